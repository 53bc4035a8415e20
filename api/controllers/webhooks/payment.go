package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/bazario/marketplace-backend/api/responses"
	internalorders "github.com/bazario/marketplace-backend/internal/orders"
	"github.com/bazario/marketplace-backend/internal/payments"
	"github.com/bazario/marketplace-backend/pkg/enums"
	pkgerrors "github.com/bazario/marketplace-backend/pkg/errors"
	"github.com/bazario/marketplace-backend/pkg/logger"
)

const signatureHeader = "X-Bazario-Signature"

type paymentWebhookEvent struct {
	EventID         string `json:"event_id"`
	OrderNumber     string `json:"order_number"`
	PaymentStatus   string `json:"payment_status"`
	PaidAmountCents int64  `json:"paid_amount_cents"`
	TransactionRef  string `json:"transaction_ref"`
}

// PaymentWebhook applies gateway payment results to orders.
func PaymentWebhook(svc internalorders.Service, secret string, guard *payments.IdempotencyGuard, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		if guard == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "idempotency guard unavailable"))
			return
		}

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request body"))
			return
		}

		sigHeader := r.Header.Get(signatureHeader)
		if sigHeader == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "signature missing"))
			return
		}
		if !validateSignature(payload, secret, sigHeader) {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid signature"))
			return
		}

		var event paymentWebhookEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode event"))
			return
		}

		eventID := strings.TrimSpace(event.EventID)
		if eventID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "event id is required"))
			return
		}
		if strings.TrimSpace(event.OrderNumber) == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order number is required"))
			return
		}

		paymentStatus, err := enums.ParsePaymentStatus(event.PaymentStatus)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment status"))
			return
		}

		alreadyProcessed, err := guard.CheckAndMark(ctx, eventID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check idempotency"))
			return
		}
		if alreadyProcessed {
			responses.WriteSuccess(w, nil)
			return
		}

		input := internalorders.PaymentUpdateInput{
			OrderNumber:     event.OrderNumber,
			PaymentStatus:   paymentStatus,
			PaidAmountCents: event.PaidAmountCents,
			TransactionRef:  event.TransactionRef,
		}
		if err := svc.ApplyPaymentUpdate(ctx, input); err != nil {
			_ = guard.Delete(ctx, eventID)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, nil)
	}
}

func validateSignature(payload []byte, secret, header string) bool {
	if header == "" || secret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(header))
}
