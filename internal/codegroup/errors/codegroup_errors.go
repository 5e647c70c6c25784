package codegrouperrors

import (
	"net/http"

	"github.com/davidvasconcellos/PayrollDataExtractor/internal/shared/apperror"
)

var (
	ErrGroupNotFound = apperror.New(
		apperror.CodeNotFound,
		"Code group not found",
		http.StatusNotFound,
	)

	ErrEmptyCodeList = apperror.New(
		apperror.CodeInvalidInput,
		"Code group must contain at least one code",
		http.StatusBadRequest,
	)

	ErrCodeAlreadyGrouped = apperror.New(
		apperror.CodeConflict,
		"One or more codes already belong to another group",
		http.StatusConflict,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user id",
		http.StatusBadRequest,
	)
)
