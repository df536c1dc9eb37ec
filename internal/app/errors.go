package app

import (
	"fmt"
	"net/http"
)

type DomainError struct {
	Status  int
	Code    string
	Message string
	Details any
}

func (e *DomainError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func domainError(status int, code, message string, details any) *DomainError {
	return &DomainError{
		Status:  status,
		Code:    code,
		Message: message,
		Details: details,
	}
}

func errConfigMissing(message string, details any) *DomainError {
	return domainError(http.StatusPreconditionFailed, "CONFIG_MISSING", message, details)
}

func errUpstreamUnreachable(message string) *DomainError {
	return domainError(http.StatusBadGateway, "UPSTREAM_UNREACHABLE", message, nil)
}

func errUpstreamProtocol(message string) *DomainError {
	return domainError(http.StatusBadGateway, "UPSTREAM_PROTOCOL", message, nil)
}

func errRemoteRejected(status int, message string) *DomainError {
	return domainError(status, "REMOTE_REJECTED", message, nil)
}

func errStorageFull() *DomainError {
	return domainError(http.StatusRequestEntityTooLarge, "STORAGE_FULL", "Draft too large for storage quota", nil)
}

func errValidation(message string) *DomainError {
	return domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", message, nil)
}

func errDeployInFlight() *DomainError {
	return domainError(http.StatusConflict, "DEPLOY_IN_FLIGHT", "A deployment is already running", nil)
}
