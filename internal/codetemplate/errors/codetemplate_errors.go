package codetemplateerrors

import (
	"net/http"

	"github.com/davidvasconcellos/PayrollDataExtractor/internal/shared/apperror"
)

var (
	ErrTemplateNotFound = apperror.New(
		apperror.CodeNotFound,
		"Code template not found",
		http.StatusNotFound,
	)

	ErrEmptyCodeList = apperror.New(
		apperror.CodeInvalidInput,
		"Code template must contain at least one code",
		http.StatusBadRequest,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user id",
		http.StatusBadRequest,
	)
)
