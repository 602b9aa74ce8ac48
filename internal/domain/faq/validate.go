package faq

import (
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "github.com/yanqian/faq-translate/pkg/errors"
)

func (s *service) validateCreate(req CreateRequest) error {
	if err := s.checkField("question", req.Question, s.cfg.MaxQuestionLen); err != nil {
		return err
	}
	return s.checkField("answer", req.Answer, s.cfg.MaxAnswerLen)
}

func (s *service) validateUpdate(req UpdateRequest) error {
	if req.Empty() {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "at least one of question or answer is required", nil)
	}
	if req.Question != nil {
		if err := s.checkField("question", *req.Question, s.cfg.MaxQuestionLen); err != nil {
			return err
		}
	}
	if req.Answer != nil {
		if err := s.checkField("answer", *req.Answer, s.cfg.MaxAnswerLen); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) checkField(name, value string, limit int) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.Wrap(apperrors.CodeInvalidInput, name+" cannot be empty", nil)
	}
	if utf8.RuneCountInString(value) > limit {
		return apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("%s exceeds %d characters", name, limit), nil)
	}
	return nil
}
