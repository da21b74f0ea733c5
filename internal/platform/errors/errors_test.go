package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestCodeGRPCCode(t *testing.T) {
	tests := []struct {
		code Code
		want codes.Code
	}{
		{CodeOutOfRange, codes.OutOfRange},
		{CodeAlreadyOwned, codes.AlreadyExists},
		{CodePaymentMismatch, codes.InvalidArgument},
		{CodeCallerRequired, codes.InvalidArgument},
		{CodeLedgerParametersInvalid, codes.InvalidArgument},
		{CodeNotOwner, codes.PermissionDenied},
		{CodeNoPendingOffer, codes.NotFound},
		{CodeStaleOffer, codes.FailedPrecondition},
		{CodeLedgerNotCreated, codes.FailedPrecondition},
		{CodeLedgerAlreadyCreated, codes.FailedPrecondition},
		{CodeCallerInvalid, codes.Unauthenticated},
		{CodeUnknown, codes.Internal},
	}
	for _, tc := range tests {
		if got := tc.code.GRPCCode(); got != tc.want {
			t.Fatalf("%s.GRPCCode() = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestErrorIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("buy: %w", New(CodeAlreadyOwned, "ticket 3 owned"))
	if !errors.Is(err, New(CodeAlreadyOwned, "")) {
		t.Fatal("expected code match through wrapping")
	}
	if errors.Is(err, New(CodeNotOwner, "")) {
		t.Fatal("unexpected match on different code")
	}
	if !IsCode(err, CodeAlreadyOwned) {
		t.Fatal("expected IsCode to see wrapped code")
	}
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Fatal("expected unknown code for plain error")
	}
}

func TestWrapUnwrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(CodeUnknown, "append event", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
}

func TestHandleErrorAttachesDetails(t *testing.T) {
	err := WithMetadata(CodePaymentMismatch, "payment 9 != price 10", map[string]string{"Paid": "9", "Price": "10"})
	st, ok := status.FromError(HandleError(err, "pt-BR"))
	if !ok {
		t.Fatal("expected grpc status")
	}
	if st.Code() != codes.InvalidArgument {
		t.Fatalf("code = %v, want InvalidArgument", st.Code())
	}
	if st.Message() != "payment 9 != price 10" {
		t.Fatalf("message = %q", st.Message())
	}

	var info *errdetails.ErrorInfo
	var localized *errdetails.LocalizedMessage
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			info = d
		case *errdetails.LocalizedMessage:
			localized = d
		}
	}
	if info == nil || info.GetReason() != string(CodePaymentMismatch) || info.GetDomain() != Domain {
		t.Fatalf("error info = %v", info)
	}
	if localized == nil || localized.GetLocale() != "pt-BR" {
		t.Fatalf("localized message = %v", localized)
	}
	if localized.GetMessage() != "O pagamento de 9 não corresponde ao preço de 10" {
		t.Fatalf("localized text = %q", localized.GetMessage())
	}
}

func TestHandleErrorPassThroughAndFallback(t *testing.T) {
	if HandleError(nil, "") != nil {
		t.Fatal("expected nil for nil error")
	}

	existing := status.Error(codes.Unavailable, "down")
	if got := HandleError(existing, ""); status.Code(got) != codes.Unavailable {
		t.Fatalf("expected status passthrough, got %v", got)
	}

	if got := HandleError(context.Canceled, ""); status.Code(got) != codes.Canceled {
		t.Fatalf("expected canceled, got %v", got)
	}

	if got := HandleError(errors.New("boom"), ""); status.Code(got) != codes.Internal {
		t.Fatalf("expected internal, got %v", got)
	}
}
