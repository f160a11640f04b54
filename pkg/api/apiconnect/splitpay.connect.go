// Package apiconnect binds splitpay.v1.SplitPayService to Connect handlers
// and clients.
package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitpay/pkg/api"
)

// SplitPayServiceName is the fully-qualified name of the service.
const SplitPayServiceName = "splitpay.v1.SplitPayService"

// Procedure paths. They are the URL paths the handler answers on.
const (
	SplitPayServiceCreateSessionProcedure     = "/splitpay.v1.SplitPayService/CreateSession"
	SplitPayServiceEndSessionProcedure        = "/splitpay.v1.SplitPayService/EndSession"
	SplitPayServiceAddExpenseProcedure        = "/splitpay.v1.SplitPayService/AddExpense"
	SplitPayServiceRemoveExpenseProcedure     = "/splitpay.v1.SplitPayService/RemoveExpense"
	SplitPayServiceListExpensesProcedure      = "/splitpay.v1.SplitPayService/ListExpenses"
	SplitPayServiceSetParticipantsProcedure   = "/splitpay.v1.SplitPayService/SetParticipants"
	SplitPayServiceComputeSplitProcedure      = "/splitpay.v1.SplitPayService/ComputeSplit"
	SplitPayServiceListContactsProcedure      = "/splitpay.v1.SplitPayService/ListContacts"
	SplitPayServiceSelectRecipientProcedure   = "/splitpay.v1.SplitPayService/SelectRecipient"
	SplitPayServiceDeselectRecipientProcedure = "/splitpay.v1.SplitPayService/DeselectRecipient"
	SplitPayServiceGetPaymentLinkProcedure    = "/splitpay.v1.SplitPayService/GetPaymentLink"
	SplitPayServiceRequestPaymentProcedure    = "/splitpay.v1.SplitPayService/RequestPayment"
)

// SplitPayServiceHandler is implemented by the server.
type SplitPayServiceHandler interface {
	CreateSession(context.Context, *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error)
	EndSession(context.Context, *connect.Request[api.EndSessionRequest]) (*connect.Response[api.EndSessionResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	RemoveExpense(context.Context, *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.RemoveExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	SetParticipants(context.Context, *connect.Request[api.SetParticipantsRequest]) (*connect.Response[api.SetParticipantsResponse], error)
	ComputeSplit(context.Context, *connect.Request[api.ComputeSplitRequest]) (*connect.Response[api.ComputeSplitResponse], error)
	ListContacts(context.Context, *connect.Request[api.ListContactsRequest]) (*connect.Response[api.ListContactsResponse], error)
	SelectRecipient(context.Context, *connect.Request[api.SelectRecipientRequest]) (*connect.Response[api.SelectRecipientResponse], error)
	DeselectRecipient(context.Context, *connect.Request[api.DeselectRecipientRequest]) (*connect.Response[api.DeselectRecipientResponse], error)
	GetPaymentLink(context.Context, *connect.Request[api.GetPaymentLinkRequest]) (*connect.Response[api.GetPaymentLinkResponse], error)
	RequestPayment(context.Context, *connect.Request[api.RequestPaymentRequest]) (*connect.Response[api.RequestPaymentResponse], error)
}

// NewSplitPayServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewSplitPayServiceHandler(svc SplitPayServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(SplitPayServiceCreateSessionProcedure, connect.NewUnaryHandler(SplitPayServiceCreateSessionProcedure, svc.CreateSession, opts...))
	mux.Handle(SplitPayServiceEndSessionProcedure, connect.NewUnaryHandler(SplitPayServiceEndSessionProcedure, svc.EndSession, opts...))
	mux.Handle(SplitPayServiceAddExpenseProcedure, connect.NewUnaryHandler(SplitPayServiceAddExpenseProcedure, svc.AddExpense, opts...))
	mux.Handle(SplitPayServiceRemoveExpenseProcedure, connect.NewUnaryHandler(SplitPayServiceRemoveExpenseProcedure, svc.RemoveExpense, opts...))
	mux.Handle(SplitPayServiceListExpensesProcedure, connect.NewUnaryHandler(SplitPayServiceListExpensesProcedure, svc.ListExpenses, opts...))
	mux.Handle(SplitPayServiceSetParticipantsProcedure, connect.NewUnaryHandler(SplitPayServiceSetParticipantsProcedure, svc.SetParticipants, opts...))
	mux.Handle(SplitPayServiceComputeSplitProcedure, connect.NewUnaryHandler(SplitPayServiceComputeSplitProcedure, svc.ComputeSplit, opts...))
	mux.Handle(SplitPayServiceListContactsProcedure, connect.NewUnaryHandler(SplitPayServiceListContactsProcedure, svc.ListContacts, opts...))
	mux.Handle(SplitPayServiceSelectRecipientProcedure, connect.NewUnaryHandler(SplitPayServiceSelectRecipientProcedure, svc.SelectRecipient, opts...))
	mux.Handle(SplitPayServiceDeselectRecipientProcedure, connect.NewUnaryHandler(SplitPayServiceDeselectRecipientProcedure, svc.DeselectRecipient, opts...))
	mux.Handle(SplitPayServiceGetPaymentLinkProcedure, connect.NewUnaryHandler(SplitPayServiceGetPaymentLinkProcedure, svc.GetPaymentLink, opts...))
	mux.Handle(SplitPayServiceRequestPaymentProcedure, connect.NewUnaryHandler(SplitPayServiceRequestPaymentProcedure, svc.RequestPayment, opts...))

	return "/" + SplitPayServiceName + "/", mux
}

// SplitPayServiceClient is a client for splitpay.v1.SplitPayService.
type SplitPayServiceClient struct {
	createSession     *connect.Client[api.CreateSessionRequest, api.CreateSessionResponse]
	endSession        *connect.Client[api.EndSessionRequest, api.EndSessionResponse]
	addExpense        *connect.Client[api.AddExpenseRequest, api.AddExpenseResponse]
	removeExpense     *connect.Client[api.RemoveExpenseRequest, api.RemoveExpenseResponse]
	listExpenses      *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	setParticipants   *connect.Client[api.SetParticipantsRequest, api.SetParticipantsResponse]
	computeSplit      *connect.Client[api.ComputeSplitRequest, api.ComputeSplitResponse]
	listContacts      *connect.Client[api.ListContactsRequest, api.ListContactsResponse]
	selectRecipient   *connect.Client[api.SelectRecipientRequest, api.SelectRecipientResponse]
	deselectRecipient *connect.Client[api.DeselectRecipientRequest, api.DeselectRecipientResponse]
	getPaymentLink    *connect.Client[api.GetPaymentLinkRequest, api.GetPaymentLinkResponse]
	requestPayment    *connect.Client[api.RequestPaymentRequest, api.RequestPaymentResponse]
}

// NewSplitPayServiceClient constructs a client. baseURL is the server root,
// for example http://localhost:8080.
func NewSplitPayServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SplitPayServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &SplitPayServiceClient{
		createSession:     connect.NewClient[api.CreateSessionRequest, api.CreateSessionResponse](httpClient, baseURL+SplitPayServiceCreateSessionProcedure, opts...),
		endSession:        connect.NewClient[api.EndSessionRequest, api.EndSessionResponse](httpClient, baseURL+SplitPayServiceEndSessionProcedure, opts...),
		addExpense:        connect.NewClient[api.AddExpenseRequest, api.AddExpenseResponse](httpClient, baseURL+SplitPayServiceAddExpenseProcedure, opts...),
		removeExpense:     connect.NewClient[api.RemoveExpenseRequest, api.RemoveExpenseResponse](httpClient, baseURL+SplitPayServiceRemoveExpenseProcedure, opts...),
		listExpenses:      connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL+SplitPayServiceListExpensesProcedure, opts...),
		setParticipants:   connect.NewClient[api.SetParticipantsRequest, api.SetParticipantsResponse](httpClient, baseURL+SplitPayServiceSetParticipantsProcedure, opts...),
		computeSplit:      connect.NewClient[api.ComputeSplitRequest, api.ComputeSplitResponse](httpClient, baseURL+SplitPayServiceComputeSplitProcedure, opts...),
		listContacts:      connect.NewClient[api.ListContactsRequest, api.ListContactsResponse](httpClient, baseURL+SplitPayServiceListContactsProcedure, opts...),
		selectRecipient:   connect.NewClient[api.SelectRecipientRequest, api.SelectRecipientResponse](httpClient, baseURL+SplitPayServiceSelectRecipientProcedure, opts...),
		deselectRecipient: connect.NewClient[api.DeselectRecipientRequest, api.DeselectRecipientResponse](httpClient, baseURL+SplitPayServiceDeselectRecipientProcedure, opts...),
		getPaymentLink:    connect.NewClient[api.GetPaymentLinkRequest, api.GetPaymentLinkResponse](httpClient, baseURL+SplitPayServiceGetPaymentLinkProcedure, opts...),
		requestPayment:    connect.NewClient[api.RequestPaymentRequest, api.RequestPaymentResponse](httpClient, baseURL+SplitPayServiceRequestPaymentProcedure, opts...),
	}
}

func (c *SplitPayServiceClient) CreateSession(ctx context.Context, req *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error) {
	return c.createSession.CallUnary(ctx, req)
}

func (c *SplitPayServiceClient) EndSession(ctx context.Context, req *connect.Request[api.EndSessionRequest]) (*connect.Response[api.EndSessionResponse], error) {
	return c.endSession.CallUnary(ctx, req)
}

func (c *SplitPayServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *SplitPayServiceClient) RemoveExpense(ctx context.Context, req *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.RemoveExpenseResponse], error) {
	return c.removeExpense.CallUnary(ctx, req)
}

func (c *SplitPayServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *SplitPayServiceClient) SetParticipants(ctx context.Context, req *connect.Request[api.SetParticipantsRequest]) (*connect.Response[api.SetParticipantsResponse], error) {
	return c.setParticipants.CallUnary(ctx, req)
}

func (c *SplitPayServiceClient) ComputeSplit(ctx context.Context, req *connect.Request[api.ComputeSplitRequest]) (*connect.Response[api.ComputeSplitResponse], error) {
	return c.computeSplit.CallUnary(ctx, req)
}

func (c *SplitPayServiceClient) ListContacts(ctx context.Context, req *connect.Request[api.ListContactsRequest]) (*connect.Response[api.ListContactsResponse], error) {
	return c.listContacts.CallUnary(ctx, req)
}

func (c *SplitPayServiceClient) SelectRecipient(ctx context.Context, req *connect.Request[api.SelectRecipientRequest]) (*connect.Response[api.SelectRecipientResponse], error) {
	return c.selectRecipient.CallUnary(ctx, req)
}

func (c *SplitPayServiceClient) DeselectRecipient(ctx context.Context, req *connect.Request[api.DeselectRecipientRequest]) (*connect.Response[api.DeselectRecipientResponse], error) {
	return c.deselectRecipient.CallUnary(ctx, req)
}

func (c *SplitPayServiceClient) GetPaymentLink(ctx context.Context, req *connect.Request[api.GetPaymentLinkRequest]) (*connect.Response[api.GetPaymentLinkResponse], error) {
	return c.getPaymentLink.CallUnary(ctx, req)
}

func (c *SplitPayServiceClient) RequestPayment(ctx context.Context, req *connect.Request[api.RequestPaymentRequest]) (*connect.Response[api.RequestPaymentResponse], error) {
	return c.requestPayment.CallUnary(ctx, req)
}
