package invoices

import (
	"errors"
	"testing"
)

func fptr(f float64) *float64 { return &f }

func TestValidate(t *testing.T) {
	cases := []struct {
		name       string
		form       Form
		wantFields []string
	}{
		{"valid pending", Form{CustomerID: "cust-1", Amount: fptr(12.34), Status: "pending"}, nil},
		{"valid paid", Form{CustomerID: "cust-1", Amount: fptr(0), Status: "paid"}, nil},
		{"missing customer", Form{Amount: fptr(1), Status: "paid"}, []string{"customer_id"}},
		{"missing amount", Form{CustomerID: "cust-1", Status: "paid"}, []string{"amount"}},
		{"missing status", Form{CustomerID: "cust-1", Amount: fptr(1)}, []string{"status"}},
		{"delayed not writable", Form{CustomerID: "cust-1", Amount: fptr(1), Status: "delayed"}, []string{"status"}},
		{"bogus status", Form{CustomerID: "cust-1", Amount: fptr(1), Status: "overdue"}, []string{"status"}},
		{"everything missing", Form{}, []string{"amount", "customer_id", "status"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := validate(tc.form)
			if tc.wantFields == nil {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
			}
			if len(verr.Fields) != len(tc.wantFields) {
				t.Fatalf("fields = %v, want keys %v", verr.Fields, tc.wantFields)
			}
			for _, f := range tc.wantFields {
				if _, ok := verr.Fields[f]; !ok {
					t.Errorf("missing field %q in %v", f, verr.Fields)
				}
			}
		})
	}
}

func TestValidateNormalizesStatus(t *testing.T) {
	status, err := validate(Form{CustomerID: "cust-1", Amount: fptr(1), Status: "  PAID "})
	if err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	if status != "paid" {
		t.Errorf("status = %q, want paid", status)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"amount": "required", "status": "must be pending or paid"}}
	want := "validation failed: amount: required; status: must be pending or paid"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
