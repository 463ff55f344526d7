package tools

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
)

// A Asaas não é consistente nos nomes de campos entre endpoints e eventos.
// As consultas abaixo escolhem o primeiro valor string não vazio na ordem de prioridade.
const jqPrelude = `def str: select(type == "string" and . != "");`

const paymentLinkExpr = jqPrelude + `
if type != "object" then null else
  [ .invoiceUrl, .paymentLink, .bankSlipUrl, .boletoUrl, .pixQrCodeUrl,
    (.pix | objects | .qrCodeUrl), .invoiceUrlOriginal ]
  | map(str) | first
end`

const subscriptionIDExpr = jqPrelude + `
if type != "object" then null else
  [ (.subscription | objects | .id),
    (.payment | objects | .subscription, .subscriptionId),
    (.subscription | strings) ]
  | map(str) | first
end`

const providerStatusExpr = jqPrelude + `
if type != "object" then null else
  [ (.payment | objects | .status),
    (.subscription | objects | .status),
    .status,
    .event ]
  | map(str) | first
end`

var (
	paymentLinkQuery    = mustCompile(paymentLinkExpr)
	subscriptionIDQuery = mustCompile(subscriptionIDExpr)
	providerStatusQuery = mustCompile(providerStatusExpr)
)

func mustCompile(expr string) *gojq.Code {
	parsed, err := gojq.Parse(expr)
	if err != nil {
		panic(fmt.Sprintf("jq parse: %v", err))
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		panic(fmt.Sprintf("jq compile: %v", err))
	}
	return code
}

// firstString roda a consulta e devolve o primeiro resultado string ("" se nenhum).
func firstString(code *gojq.Code, v any) string {
	iter := code.Run(v)
	for {
		out, ok := iter.Next()
		if !ok {
			return ""
		}
		if _, isErr := out.(error); isErr {
			return ""
		}
		if s, ok := out.(string); ok && s != "" {
			return s
		}
	}
}

// DecodePayload decodifica JSON para os tipos genéricos que o gojq entende.
func DecodePayload(raw []byte) (any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// PaymentLink devolve o link de pagamento de uma resposta de assinatura ou cobrança.
func PaymentLink(v any) string {
	return firstString(paymentLinkQuery, v)
}

// ExtractSubscriptionID procura o id da assinatura em subscription.id, payment.subscription,
// payment.subscriptionId e, por fim, subscription como string.
func ExtractSubscriptionID(v any) string {
	return firstString(subscriptionIDQuery, v)
}

// ExtractProviderStatus devolve payment.status, subscription.status, status ou event,
// nessa ordem. O resultado ainda precisa passar por models.MapBillingStatus.
func ExtractProviderStatus(v any) string {
	return firstString(providerStatusQuery, v)
}
