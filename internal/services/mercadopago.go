package services

import (
	"context"
	"log"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

// PreferenceItem es una línea del checkout tal como la manda el frontend.
type PreferenceItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type PreferencePayer struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
}

type CheckoutPreference struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

type PaymentInfo struct {
	ID                int64   `json:"id"`
	Status            string  `json:"status"`
	Amount            float64 `json:"amount"`
	PayerEmail        string  `json:"payer_email"`
	ExternalReference string  `json:"external_reference"`
}

// Gateway abstrae la pasarela de pagos para poder testear el checkout sin
// pegarle a MercadoPago.
type Gateway interface {
	CreatePreference(ctx context.Context, items []PreferenceItem, payer PreferencePayer, externalRef string) (*CheckoutPreference, error)
	GetPayment(ctx context.Context, id int) (*PaymentInfo, error)
}

// MercadoPago implementa Gateway contra el SDK oficial. Una sola llamada
// sincrónica por request, sin reintentos: si el gateway falla, el error del
// gateway se propaga tal cual al cliente.
type MercadoPago struct {
	prefs    preference.Client
	payments payment.Client
	baseURL  string
	currency string
}

func NewMercadoPago(accessToken, baseURL, currency string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}
	if currency == "" {
		currency = "ARS"
	}
	return &MercadoPago{
		prefs:    preference.NewClient(cfg),
		payments: payment.NewClient(cfg),
		baseURL:  baseURL,
		currency: currency,
	}, nil
}

func (mp *MercadoPago) CreatePreference(ctx context.Context, items []PreferenceItem, payer PreferencePayer, externalRef string) (*CheckoutPreference, error) {
	request := preference.Request{
		Items:             make([]preference.ItemRequest, 0, len(items)),
		ExternalReference: externalRef,
		BackURLs: &preference.BackURLsRequest{
			Success: mp.baseURL + "/checkout/success",
			Failure: mp.baseURL + "/checkout/failure",
			Pending: mp.baseURL + "/checkout/pending",
		},
		AutoReturn: "approved",
		Payer: &preference.PayerRequest{
			Name:    payer.Name,
			Surname: payer.Surname,
			Email:   payer.Email,
		},
	}

	for _, it := range items {
		request.Items = append(request.Items, preference.ItemRequest{
			Title:      it.Name,
			Quantity:   it.Quantity,
			CurrencyID: mp.currency,
			UnitPrice:  it.Price,
		})
	}

	resource, err := mp.prefs.Create(ctx, request)
	if err != nil {
		return nil, err
	}

	log.Printf("💳 Preferencia creada: %s", resource.ID)
	return &CheckoutPreference{ID: resource.ID, InitPoint: resource.InitPoint}, nil
}

func (mp *MercadoPago) GetPayment(ctx context.Context, id int) (*PaymentInfo, error) {
	resource, err := mp.payments.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &PaymentInfo{
		ID:                int64(resource.ID),
		Status:            resource.Status,
		Amount:            resource.TransactionAmount,
		PayerEmail:        resource.Payer.Email,
		ExternalReference: resource.ExternalReference,
	}, nil
}
