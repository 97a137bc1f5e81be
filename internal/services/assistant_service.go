package services

import (
	"context"
	"fmt"
	"strings"
)

const (
	incorrectAnswerTemplate = "I see you answered \"%s\" for the question: \"%s\". \n\n" +
		"Let me help you understand this better:\n\n" +
		"The answer you provided isn't quite correct. Here are some key points to consider:\n\n" +
		"1. Review the fundamental concepts related to this question\n" +
		"2. Break down the problem into smaller parts\n" +
		"3. Try to identify where your reasoning might have gone off track\n\n" +
		"Would you like me to explain the correct approach? Remember, making mistakes is part of learning! Keep practicing and you'll master this concept."

	gettingStartedTemplate = "You're working on: \"%s\"\n\n" +
		"Here are some tips to help you get started:\n\n" +
		"1. Read the question carefully and identify what's being asked\n" +
		"2. Think about the concepts and principles that apply here\n" +
		"3. Break down the problem into manageable steps\n" +
		"4. Try your best - even if you're not 100%% sure!\n\n" +
		"Remember, the goal is to learn and improve. Don't worry about making mistakes - they're valuable learning opportunities!"

	encouragementTemplate = "Great job on answering the question: \"%s\"! \n\n" +
		"Keep up the excellent work! Here are some ways to continue improving:\n\n" +
		"1. Try to explain your reasoning - this deepens understanding\n" +
		"2. Look for connections to other concepts you've learned\n" +
		"3. Challenge yourself with more complex problems\n\n" +
		"You're doing wonderfully! Keep learning and growing! 🌟"
)

// assistantService answers from fixed templates
type assistantService struct{}

func NewAssistantService() AssistantService {
	return &assistantService{}
}

func (s *assistantService) Help(ctx context.Context, req *AIHelpRequest) (string, error) {
	if strings.TrimSpace(req.Question) == "" {
		return "", NewValidationError("question", "question is required", nil)
	}

	hasAnswer := req.Answer != nil && *req.Answer != ""
	switch {
	case req.IsCorrect != nil && !*req.IsCorrect && hasAnswer:
		return fmt.Sprintf(incorrectAnswerTemplate, *req.Answer, req.Question), nil
	case !hasAnswer:
		return fmt.Sprintf(gettingStartedTemplate, req.Question), nil
	default:
		return fmt.Sprintf(encouragementTemplate, req.Question), nil
	}
}
