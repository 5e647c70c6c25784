package paysliperrors

import (
	"net/http"

	"github.com/davidvasconcellos/PayrollDataExtractor/internal/shared/apperror"
)

var (
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidSource = apperror.New(
		apperror.CodeInvalidInput,
		"source must be ERP or RH",
		http.StatusBadRequest,
	)
	ErrMissingDocument = apperror.New(
		apperror.CodeInvalidInput,
		"document file is required",
		http.StatusBadRequest,
	)
	ErrEmptyCodeList = apperror.New(
		apperror.CodeInvalidInput,
		"at least one payroll code is required",
		http.StatusBadRequest,
	)
	ErrDocumentUnreadable = apperror.New(
		apperror.CodeUnprocessable,
		"the document could not be processed",
		http.StatusUnprocessableEntity,
	)
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"payslip not found",
		http.StatusNotFound,
	)
)
