package ai

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/careflow-api/internal/httperr"
)

type ChatReply struct {
	Answer    string `json:"answer"`
	MessageID string `json:"message_id"`
}

const chatTemplate = `I understand your question about "%s". %s

In the meantime, maintaining a balanced diet and regular exercise can help improve overall health markers. Here are some general recommendations:

• Stay hydrated - drink 8 glasses of water daily
• Incorporate more fruits and vegetables
• Regular physical activity - at least 30 minutes daily
• Get adequate sleep (7-9 hours)
• Manage stress through relaxation techniques

Is there anything specific you'd like to know more about?`

// Chat answers from a template; it never calls the model.
func Chat(question, reportID string) (ChatReply, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return ChatReply{}, httperr.ErrInvalidRequest
	}

	lead := "I recommend consulting with your healthcare provider for personalized advice."
	if strings.TrimSpace(reportID) != "" {
		lead = "Based on your health report, I recommend consulting with your healthcare provider for personalized advice."
	}

	return ChatReply{
		Answer:    fmt.Sprintf(chatTemplate, question, lead),
		MessageID: uuid.NewString(),
	}, nil
}

var popularTerms = []string{
	"Hypertension",
	"Diabetes",
	"Cholesterol",
	"BMI",
	"Cardiovascular",
	"Inflammation",
}

func PopularTerms() []string {
	return append([]string(nil), popularTerms...)
}
