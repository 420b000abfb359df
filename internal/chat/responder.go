// Package chat implements the keyword-driven health assistant conversation engine.
package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Message is a single turn in a chat conversation.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Greeting opens every new conversation.
const Greeting = "Hello! I'm your AI health assistant. I can help you understand symptoms, provide general health information, and guide you on when to seek medical care. How can I help you today?"

// responseRule maps a set of trigger keywords to a canned reply. Rules are
// evaluated in order and the first match wins.
type responseRule struct {
	Name     string
	Keywords []string
	Reply    string
}

// Responder generates assistant replies from user input.
type Responder struct {
	logger *logrus.Logger
	rules  []responseRule
}

// NewResponder creates a responder with the standard topic rules.
func NewResponder(logger *logrus.Logger) *Responder {
	if logger == nil {
		logger = logrus.New()
	}
	return &Responder{
		logger: logger,
		rules:  standardRules(),
	}
}

// Respond produces the assistant message answering the given user input.
func (r *Responder) Respond(input string) Message {
	lower := strings.ToLower(input)

	reply := fallbackReply
	topic := "general"
	for _, rule := range r.rules {
		if containsAny(lower, rule.Keywords) {
			reply = rule.Reply
			topic = rule.Name
			break
		}
	}

	r.logger.WithFields(logrus.Fields{
		"topic":        topic,
		"input_length": len(input),
	}).Debug("Chat reply generated")

	return Message{
		ID:        uuid.New().String(),
		Role:      RoleAssistant,
		Content:   reply,
		Timestamp: time.Now(),
	}
}

// GreetingMessage returns the opening assistant message for a new session.
func (r *Responder) GreetingMessage() Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      RoleAssistant,
		Content:   Greeting,
		Timestamp: time.Now(),
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

const fallbackReply = "Thank you for sharing that information. While I can provide general health guidance, I'm not a replacement for professional medical advice. For specific concerns, persistent symptoms, or if you're unsure about your condition, I recommend consulting with a qualified healthcare provider. Would you like me to help you find a doctor or provide more information about a specific symptom?"

func standardRules() []responseRule {
	return []responseRule{
		{
			Name:     "headache",
			Keywords: []string{"headache", "head pain"},
			Reply:    "Headaches can have various causes. Common ones include tension, dehydration, or lack of sleep. Try resting in a quiet, dark room, staying hydrated, and applying a cold compress. If your headache is severe, persistent, or accompanied by other symptoms like vision changes or fever, please consult a healthcare provider immediately.",
		},
		{
			Name:     "fever",
			Keywords: []string{"fever", "temperature"},
			Reply:    "A fever is usually a sign that your body is fighting an infection. For adults, a temperature above 100.4°F (38°C) is considered a fever. Stay hydrated, rest, and you can take over-the-counter medications like acetaminophen or ibuprofen (if not contraindicated). If your fever is above 103°F, persists for more than 3 days, or is accompanied by severe symptoms, seek medical attention.",
		},
		{
			Name:     "cough",
			Keywords: []string{"cough", "coughing"},
			Reply:    "Coughs can be caused by infections, allergies, or irritants. Stay hydrated, use a humidifier, and consider honey (for adults) or cough drops. If your cough persists for more than 2 weeks, is accompanied by blood, chest pain, or difficulty breathing, please see a healthcare provider.",
		},
		{
			Name:     "pain",
			Keywords: []string{"pain", "hurt"},
			Reply:    "Pain can indicate various conditions. For mild pain, rest, ice/heat therapy, and over-the-counter pain relievers may help. However, if you experience severe pain, pain that doesn't improve, or pain accompanied by other concerning symptoms, it's important to consult with a healthcare professional for proper evaluation.",
		},
		{
			Name:     "appointment",
			Keywords: []string{"appointment", "doctor"},
			Reply:    "I can help you find a doctor! You can use the \"Find Doctors\" section to search for healthcare providers by specialty and location. Based on your symptoms, I can also recommend which type of specialist might be most appropriate for your needs.",
		},
		{
			Name:     "emergency",
			Keywords: []string{"emergency", "urgent"},
			Reply:    "If you're experiencing a medical emergency with symptoms like chest pain, difficulty breathing, severe injury, or signs of stroke, please call emergency services (108 in India) immediately. For urgent but non-life-threatening concerns, you can visit an urgent care center or contact your healthcare provider.",
		},
	}
}
