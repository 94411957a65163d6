// Package apiconnect wires the dutyledger.v1.BookingService messages to
// Connect handlers and clients.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/dutyledger/dutyledger/pkg/api"
)

const (
	// BookingServiceName is the fully-qualified name of the BookingService service.
	BookingServiceName = "dutyledger.v1.BookingService"
)

// These constants are the fully-qualified names of the RPCs defined in this package. They're
// exposed at runtime as Spec.Procedure and as the final two segments of the HTTP route.
const (
	BookingServiceCreateBookingProcedure        = "/dutyledger.v1.BookingService/CreateBooking"
	BookingServiceGetBookingProcedure           = "/dutyledger.v1.BookingService/GetBooking"
	BookingServiceListBookingsProcedure         = "/dutyledger.v1.BookingService/ListBookings"
	BookingServiceUpdateBookingStatusProcedure  = "/dutyledger.v1.BookingService/UpdateBookingStatus"
	BookingServiceSaveExpenseProcedure          = "/dutyledger.v1.BookingService/SaveExpense"
	BookingServiceSaveReceivingProcedure        = "/dutyledger.v1.BookingService/SaveReceiving"
	BookingServiceGetBookingTotalsProcedure     = "/dutyledger.v1.BookingService/GetBookingTotals"
	BookingServicePreviewSettlementProcedure    = "/dutyledger.v1.BookingService/PreviewSettlement"
	BookingServiceApplyBillingEditsProcedure    = "/dutyledger.v1.BookingService/ApplyBillingEdits"
	BookingServiceSettleBookingProcedure        = "/dutyledger.v1.BookingService/SettleBooking"
	BookingServiceListSettlementAuditsProcedure = "/dutyledger.v1.BookingService/ListSettlementAudits"
	BookingServiceGetWalletProcedure            = "/dutyledger.v1.BookingService/GetWallet"
	BookingServiceAmountInWordsProcedure        = "/dutyledger.v1.BookingService/AmountInWords"
	BookingServiceExportSettlementsProcedure    = "/dutyledger.v1.BookingService/ExportSettlements"
)

// BookingServiceClient is a client for the dutyledger.v1.BookingService service.
type BookingServiceClient interface {
	CreateBooking(context.Context, *connect.Request[api.CreateBookingRequest]) (*connect.Response[api.CreateBookingResponse], error)
	GetBooking(context.Context, *connect.Request[api.GetBookingRequest]) (*connect.Response[api.GetBookingResponse], error)
	ListBookings(context.Context, *connect.Request[api.ListBookingsRequest]) (*connect.Response[api.ListBookingsResponse], error)
	UpdateBookingStatus(context.Context, *connect.Request[api.UpdateBookingStatusRequest]) (*connect.Response[api.UpdateBookingStatusResponse], error)
	SaveExpense(context.Context, *connect.Request[api.SaveExpenseRequest]) (*connect.Response[api.SaveExpenseResponse], error)
	SaveReceiving(context.Context, *connect.Request[api.SaveReceivingRequest]) (*connect.Response[api.SaveReceivingResponse], error)
	GetBookingTotals(context.Context, *connect.Request[api.GetBookingTotalsRequest]) (*connect.Response[api.GetBookingTotalsResponse], error)
	PreviewSettlement(context.Context, *connect.Request[api.PreviewSettlementRequest]) (*connect.Response[api.PreviewSettlementResponse], error)
	ApplyBillingEdits(context.Context, *connect.Request[api.ApplyBillingEditsRequest]) (*connect.Response[api.ApplyBillingEditsResponse], error)
	SettleBooking(context.Context, *connect.Request[api.SettleBookingRequest]) (*connect.Response[api.SettleBookingResponse], error)
	ListSettlementAudits(context.Context, *connect.Request[api.ListSettlementAuditsRequest]) (*connect.Response[api.ListSettlementAuditsResponse], error)
	GetWallet(context.Context, *connect.Request[api.GetWalletRequest]) (*connect.Response[api.GetWalletResponse], error)
	AmountInWords(context.Context, *connect.Request[api.AmountInWordsRequest]) (*connect.Response[api.AmountInWordsResponse], error)
	ExportSettlements(context.Context, *connect.Request[api.ExportSettlementsRequest]) (*connect.Response[api.ExportSettlementsResponse], error)
}

// NewBookingServiceClient constructs a client for the dutyledger.v1.BookingService service.
// Requests are encoded as JSON with the Connect protocol.
//
// The URL supplied here should be the base URL for the Connect server (for example,
// http://api.acme.com or https://acme.com/grpc).
func NewBookingServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BookingServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &bookingServiceClient{
		createBooking:        connect.NewClient[api.CreateBookingRequest, api.CreateBookingResponse](httpClient, baseURL+BookingServiceCreateBookingProcedure, opts...),
		getBooking:           connect.NewClient[api.GetBookingRequest, api.GetBookingResponse](httpClient, baseURL+BookingServiceGetBookingProcedure, opts...),
		listBookings:         connect.NewClient[api.ListBookingsRequest, api.ListBookingsResponse](httpClient, baseURL+BookingServiceListBookingsProcedure, opts...),
		updateBookingStatus:  connect.NewClient[api.UpdateBookingStatusRequest, api.UpdateBookingStatusResponse](httpClient, baseURL+BookingServiceUpdateBookingStatusProcedure, opts...),
		saveExpense:          connect.NewClient[api.SaveExpenseRequest, api.SaveExpenseResponse](httpClient, baseURL+BookingServiceSaveExpenseProcedure, opts...),
		saveReceiving:        connect.NewClient[api.SaveReceivingRequest, api.SaveReceivingResponse](httpClient, baseURL+BookingServiceSaveReceivingProcedure, opts...),
		getBookingTotals:     connect.NewClient[api.GetBookingTotalsRequest, api.GetBookingTotalsResponse](httpClient, baseURL+BookingServiceGetBookingTotalsProcedure, opts...),
		previewSettlement:    connect.NewClient[api.PreviewSettlementRequest, api.PreviewSettlementResponse](httpClient, baseURL+BookingServicePreviewSettlementProcedure, opts...),
		applyBillingEdits:    connect.NewClient[api.ApplyBillingEditsRequest, api.ApplyBillingEditsResponse](httpClient, baseURL+BookingServiceApplyBillingEditsProcedure, opts...),
		settleBooking:        connect.NewClient[api.SettleBookingRequest, api.SettleBookingResponse](httpClient, baseURL+BookingServiceSettleBookingProcedure, opts...),
		listSettlementAudits: connect.NewClient[api.ListSettlementAuditsRequest, api.ListSettlementAuditsResponse](httpClient, baseURL+BookingServiceListSettlementAuditsProcedure, opts...),
		getWallet:            connect.NewClient[api.GetWalletRequest, api.GetWalletResponse](httpClient, baseURL+BookingServiceGetWalletProcedure, opts...),
		amountInWords:        connect.NewClient[api.AmountInWordsRequest, api.AmountInWordsResponse](httpClient, baseURL+BookingServiceAmountInWordsProcedure, opts...),
		exportSettlements:    connect.NewClient[api.ExportSettlementsRequest, api.ExportSettlementsResponse](httpClient, baseURL+BookingServiceExportSettlementsProcedure, opts...),
	}
}

// bookingServiceClient implements BookingServiceClient.
type bookingServiceClient struct {
	createBooking        *connect.Client[api.CreateBookingRequest, api.CreateBookingResponse]
	getBooking           *connect.Client[api.GetBookingRequest, api.GetBookingResponse]
	listBookings         *connect.Client[api.ListBookingsRequest, api.ListBookingsResponse]
	updateBookingStatus  *connect.Client[api.UpdateBookingStatusRequest, api.UpdateBookingStatusResponse]
	saveExpense          *connect.Client[api.SaveExpenseRequest, api.SaveExpenseResponse]
	saveReceiving        *connect.Client[api.SaveReceivingRequest, api.SaveReceivingResponse]
	getBookingTotals     *connect.Client[api.GetBookingTotalsRequest, api.GetBookingTotalsResponse]
	previewSettlement    *connect.Client[api.PreviewSettlementRequest, api.PreviewSettlementResponse]
	applyBillingEdits    *connect.Client[api.ApplyBillingEditsRequest, api.ApplyBillingEditsResponse]
	settleBooking        *connect.Client[api.SettleBookingRequest, api.SettleBookingResponse]
	listSettlementAudits *connect.Client[api.ListSettlementAuditsRequest, api.ListSettlementAuditsResponse]
	getWallet            *connect.Client[api.GetWalletRequest, api.GetWalletResponse]
	amountInWords        *connect.Client[api.AmountInWordsRequest, api.AmountInWordsResponse]
	exportSettlements    *connect.Client[api.ExportSettlementsRequest, api.ExportSettlementsResponse]
}

func (c *bookingServiceClient) CreateBooking(ctx context.Context, req *connect.Request[api.CreateBookingRequest]) (*connect.Response[api.CreateBookingResponse], error) {
	return c.createBooking.CallUnary(ctx, req)
}

func (c *bookingServiceClient) GetBooking(ctx context.Context, req *connect.Request[api.GetBookingRequest]) (*connect.Response[api.GetBookingResponse], error) {
	return c.getBooking.CallUnary(ctx, req)
}

func (c *bookingServiceClient) ListBookings(ctx context.Context, req *connect.Request[api.ListBookingsRequest]) (*connect.Response[api.ListBookingsResponse], error) {
	return c.listBookings.CallUnary(ctx, req)
}

func (c *bookingServiceClient) UpdateBookingStatus(ctx context.Context, req *connect.Request[api.UpdateBookingStatusRequest]) (*connect.Response[api.UpdateBookingStatusResponse], error) {
	return c.updateBookingStatus.CallUnary(ctx, req)
}

func (c *bookingServiceClient) SaveExpense(ctx context.Context, req *connect.Request[api.SaveExpenseRequest]) (*connect.Response[api.SaveExpenseResponse], error) {
	return c.saveExpense.CallUnary(ctx, req)
}

func (c *bookingServiceClient) SaveReceiving(ctx context.Context, req *connect.Request[api.SaveReceivingRequest]) (*connect.Response[api.SaveReceivingResponse], error) {
	return c.saveReceiving.CallUnary(ctx, req)
}

func (c *bookingServiceClient) GetBookingTotals(ctx context.Context, req *connect.Request[api.GetBookingTotalsRequest]) (*connect.Response[api.GetBookingTotalsResponse], error) {
	return c.getBookingTotals.CallUnary(ctx, req)
}

func (c *bookingServiceClient) PreviewSettlement(ctx context.Context, req *connect.Request[api.PreviewSettlementRequest]) (*connect.Response[api.PreviewSettlementResponse], error) {
	return c.previewSettlement.CallUnary(ctx, req)
}

func (c *bookingServiceClient) ApplyBillingEdits(ctx context.Context, req *connect.Request[api.ApplyBillingEditsRequest]) (*connect.Response[api.ApplyBillingEditsResponse], error) {
	return c.applyBillingEdits.CallUnary(ctx, req)
}

func (c *bookingServiceClient) SettleBooking(ctx context.Context, req *connect.Request[api.SettleBookingRequest]) (*connect.Response[api.SettleBookingResponse], error) {
	return c.settleBooking.CallUnary(ctx, req)
}

func (c *bookingServiceClient) ListSettlementAudits(ctx context.Context, req *connect.Request[api.ListSettlementAuditsRequest]) (*connect.Response[api.ListSettlementAuditsResponse], error) {
	return c.listSettlementAudits.CallUnary(ctx, req)
}

func (c *bookingServiceClient) GetWallet(ctx context.Context, req *connect.Request[api.GetWalletRequest]) (*connect.Response[api.GetWalletResponse], error) {
	return c.getWallet.CallUnary(ctx, req)
}

func (c *bookingServiceClient) AmountInWords(ctx context.Context, req *connect.Request[api.AmountInWordsRequest]) (*connect.Response[api.AmountInWordsResponse], error) {
	return c.amountInWords.CallUnary(ctx, req)
}

func (c *bookingServiceClient) ExportSettlements(ctx context.Context, req *connect.Request[api.ExportSettlementsRequest]) (*connect.Response[api.ExportSettlementsResponse], error) {
	return c.exportSettlements.CallUnary(ctx, req)
}

// BookingServiceHandler is an implementation of the dutyledger.v1.BookingService service.
type BookingServiceHandler interface {
	CreateBooking(context.Context, *connect.Request[api.CreateBookingRequest]) (*connect.Response[api.CreateBookingResponse], error)
	GetBooking(context.Context, *connect.Request[api.GetBookingRequest]) (*connect.Response[api.GetBookingResponse], error)
	ListBookings(context.Context, *connect.Request[api.ListBookingsRequest]) (*connect.Response[api.ListBookingsResponse], error)
	UpdateBookingStatus(context.Context, *connect.Request[api.UpdateBookingStatusRequest]) (*connect.Response[api.UpdateBookingStatusResponse], error)
	SaveExpense(context.Context, *connect.Request[api.SaveExpenseRequest]) (*connect.Response[api.SaveExpenseResponse], error)
	SaveReceiving(context.Context, *connect.Request[api.SaveReceivingRequest]) (*connect.Response[api.SaveReceivingResponse], error)
	GetBookingTotals(context.Context, *connect.Request[api.GetBookingTotalsRequest]) (*connect.Response[api.GetBookingTotalsResponse], error)
	PreviewSettlement(context.Context, *connect.Request[api.PreviewSettlementRequest]) (*connect.Response[api.PreviewSettlementResponse], error)
	ApplyBillingEdits(context.Context, *connect.Request[api.ApplyBillingEditsRequest]) (*connect.Response[api.ApplyBillingEditsResponse], error)
	SettleBooking(context.Context, *connect.Request[api.SettleBookingRequest]) (*connect.Response[api.SettleBookingResponse], error)
	ListSettlementAudits(context.Context, *connect.Request[api.ListSettlementAuditsRequest]) (*connect.Response[api.ListSettlementAuditsResponse], error)
	GetWallet(context.Context, *connect.Request[api.GetWalletRequest]) (*connect.Response[api.GetWalletResponse], error)
	AmountInWords(context.Context, *connect.Request[api.AmountInWordsRequest]) (*connect.Response[api.AmountInWordsResponse], error)
	ExportSettlements(context.Context, *connect.Request[api.ExportSettlementsRequest]) (*connect.Response[api.ExportSettlementsResponse], error)
}

// NewBookingServiceHandler builds an HTTP handler from the service implementation. It returns the
// path on which to mount the handler and the handler itself.
func NewBookingServiceHandler(svc BookingServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	handlers := map[string]http.Handler{
		BookingServiceCreateBookingProcedure:        connect.NewUnaryHandler(BookingServiceCreateBookingProcedure, svc.CreateBooking, opts...),
		BookingServiceGetBookingProcedure:           connect.NewUnaryHandler(BookingServiceGetBookingProcedure, svc.GetBooking, opts...),
		BookingServiceListBookingsProcedure:         connect.NewUnaryHandler(BookingServiceListBookingsProcedure, svc.ListBookings, opts...),
		BookingServiceUpdateBookingStatusProcedure:  connect.NewUnaryHandler(BookingServiceUpdateBookingStatusProcedure, svc.UpdateBookingStatus, opts...),
		BookingServiceSaveExpenseProcedure:          connect.NewUnaryHandler(BookingServiceSaveExpenseProcedure, svc.SaveExpense, opts...),
		BookingServiceSaveReceivingProcedure:        connect.NewUnaryHandler(BookingServiceSaveReceivingProcedure, svc.SaveReceiving, opts...),
		BookingServiceGetBookingTotalsProcedure:     connect.NewUnaryHandler(BookingServiceGetBookingTotalsProcedure, svc.GetBookingTotals, opts...),
		BookingServicePreviewSettlementProcedure:    connect.NewUnaryHandler(BookingServicePreviewSettlementProcedure, svc.PreviewSettlement, opts...),
		BookingServiceApplyBillingEditsProcedure:    connect.NewUnaryHandler(BookingServiceApplyBillingEditsProcedure, svc.ApplyBillingEdits, opts...),
		BookingServiceSettleBookingProcedure:        connect.NewUnaryHandler(BookingServiceSettleBookingProcedure, svc.SettleBooking, opts...),
		BookingServiceListSettlementAuditsProcedure: connect.NewUnaryHandler(BookingServiceListSettlementAuditsProcedure, svc.ListSettlementAudits, opts...),
		BookingServiceGetWalletProcedure:            connect.NewUnaryHandler(BookingServiceGetWalletProcedure, svc.GetWallet, opts...),
		BookingServiceAmountInWordsProcedure:        connect.NewUnaryHandler(BookingServiceAmountInWordsProcedure, svc.AmountInWords, opts...),
		BookingServiceExportSettlementsProcedure:    connect.NewUnaryHandler(BookingServiceExportSettlementsProcedure, svc.ExportSettlements, opts...),
	}
	return "/" + BookingServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// UnimplementedBookingServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedBookingServiceHandler struct{}

func unimplemented(procedure string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New(procedure+" is not implemented"))
}

func (UnimplementedBookingServiceHandler) CreateBooking(context.Context, *connect.Request[api.CreateBookingRequest]) (*connect.Response[api.CreateBookingResponse], error) {
	return nil, unimplemented(BookingServiceCreateBookingProcedure)
}

func (UnimplementedBookingServiceHandler) GetBooking(context.Context, *connect.Request[api.GetBookingRequest]) (*connect.Response[api.GetBookingResponse], error) {
	return nil, unimplemented(BookingServiceGetBookingProcedure)
}

func (UnimplementedBookingServiceHandler) ListBookings(context.Context, *connect.Request[api.ListBookingsRequest]) (*connect.Response[api.ListBookingsResponse], error) {
	return nil, unimplemented(BookingServiceListBookingsProcedure)
}

func (UnimplementedBookingServiceHandler) UpdateBookingStatus(context.Context, *connect.Request[api.UpdateBookingStatusRequest]) (*connect.Response[api.UpdateBookingStatusResponse], error) {
	return nil, unimplemented(BookingServiceUpdateBookingStatusProcedure)
}

func (UnimplementedBookingServiceHandler) SaveExpense(context.Context, *connect.Request[api.SaveExpenseRequest]) (*connect.Response[api.SaveExpenseResponse], error) {
	return nil, unimplemented(BookingServiceSaveExpenseProcedure)
}

func (UnimplementedBookingServiceHandler) SaveReceiving(context.Context, *connect.Request[api.SaveReceivingRequest]) (*connect.Response[api.SaveReceivingResponse], error) {
	return nil, unimplemented(BookingServiceSaveReceivingProcedure)
}

func (UnimplementedBookingServiceHandler) GetBookingTotals(context.Context, *connect.Request[api.GetBookingTotalsRequest]) (*connect.Response[api.GetBookingTotalsResponse], error) {
	return nil, unimplemented(BookingServiceGetBookingTotalsProcedure)
}

func (UnimplementedBookingServiceHandler) PreviewSettlement(context.Context, *connect.Request[api.PreviewSettlementRequest]) (*connect.Response[api.PreviewSettlementResponse], error) {
	return nil, unimplemented(BookingServicePreviewSettlementProcedure)
}

func (UnimplementedBookingServiceHandler) ApplyBillingEdits(context.Context, *connect.Request[api.ApplyBillingEditsRequest]) (*connect.Response[api.ApplyBillingEditsResponse], error) {
	return nil, unimplemented(BookingServiceApplyBillingEditsProcedure)
}

func (UnimplementedBookingServiceHandler) SettleBooking(context.Context, *connect.Request[api.SettleBookingRequest]) (*connect.Response[api.SettleBookingResponse], error) {
	return nil, unimplemented(BookingServiceSettleBookingProcedure)
}

func (UnimplementedBookingServiceHandler) ListSettlementAudits(context.Context, *connect.Request[api.ListSettlementAuditsRequest]) (*connect.Response[api.ListSettlementAuditsResponse], error) {
	return nil, unimplemented(BookingServiceListSettlementAuditsProcedure)
}

func (UnimplementedBookingServiceHandler) GetWallet(context.Context, *connect.Request[api.GetWalletRequest]) (*connect.Response[api.GetWalletResponse], error) {
	return nil, unimplemented(BookingServiceGetWalletProcedure)
}

func (UnimplementedBookingServiceHandler) AmountInWords(context.Context, *connect.Request[api.AmountInWordsRequest]) (*connect.Response[api.AmountInWordsResponse], error) {
	return nil, unimplemented(BookingServiceAmountInWordsProcedure)
}

func (UnimplementedBookingServiceHandler) ExportSettlements(context.Context, *connect.Request[api.ExportSettlementsRequest]) (*connect.Response[api.ExportSettlementsResponse], error) {
	return nil, unimplemented(BookingServiceExportSettlementsProcedure)
}
