package sheets

import (
	"fmt"
	"testing"

	"google.golang.org/api/googleapi"

	"porte-calc/internal/errors"
)

func TestMapAPIErrorPermission(t *testing.T) {
	err := mapAPIError("sheets://abc/logs", &googleapi.Error{Code: 403}, true)
	if !errors.IsType(err, errors.TypePermission) {
		t.Fatalf("expected PERMISSION_ERROR, got %v", err)
	}
}

func TestMapAPIErrorNotFound(t *testing.T) {
	readErr := mapAPIError("sheets://abc/logs", &googleapi.Error{Code: 404}, false)
	if !errors.IsType(readErr, errors.TypeSourceUnavailable) {
		t.Fatalf("expected SOURCE_UNAVAILABLE on read, got %v", readErr)
	}
	writeErr := mapAPIError("sheets://abc/logs", &googleapi.Error{Code: 404}, true)
	if !errors.IsType(writeErr, errors.TypeDestinationUnavailable) {
		t.Fatalf("expected DESTINATION_UNAVAILABLE on write, got %v", writeErr)
	}
}

func TestMapAPIErrorOpaque(t *testing.T) {
	err := mapAPIError("sheets://abc/logs", fmt.Errorf("network down"), false)
	if !errors.IsType(err, errors.TypeSourceUnavailable) {
		t.Fatalf("expected SOURCE_UNAVAILABLE, got %v", err)
	}
}

func TestStringRow(t *testing.T) {
	row := stringRow([]interface{}{"A", 10, 2.5})
	if row[0] != "A" || row[1] != "10" || row[2] != "2.5" {
		t.Fatalf("unexpected conversion: %v", row)
	}
}
