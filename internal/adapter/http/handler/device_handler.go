package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// DeviceService defines the behavior needed by DeviceHandler.
type DeviceService interface {
	AddATM(ctx context.Context, input usecase.AddDeviceInput) (*domain.ATM, error)
	AddBranch(ctx context.Context, input usecase.AddDeviceInput) (*domain.Branch, error)
	GetDevice(ctx context.Context, id string) (domain.Device, error)
	ListDevices(ctx context.Context) ([]domain.Device, error)
	RemoveDevice(ctx context.Context, id string) (decimal.Decimal, error)
	Capital() decimal.Decimal
	WithdrawCash(ctx context.Context, input usecase.CashInput) (*usecase.TransferResult, error)
	DepositCash(ctx context.Context, input usecase.CashInput) (*usecase.TransferResult, error)
	CheckBalance(ctx context.Context, atmID, cardID, pin string) (*usecase.BalanceInquiry, error)
	LastMessage(ctx context.Context, atmID, cardID, pin string) (string, error)
	BookAppointment(ctx context.Context, input usecase.AppointmentInput) (*domain.Appointment, error)
	CancelAppointment(ctx context.Context, input usecase.AppointmentInput) error
	PayAppointment(ctx context.Context, input usecase.AppointmentInput, accountID string) (*usecase.TransferResult, error)
}

// DeviceHandler handles ATM, branch and capital HTTP requests.
type DeviceHandler struct {
	deviceUC DeviceService
}

// NewDeviceHandler creates a new DeviceHandler.
func NewDeviceHandler(deviceUC DeviceService) *DeviceHandler {
	return &DeviceHandler{deviceUC: deviceUC}
}

// Create installs an ATM or opens a branch, funded from bank capital.
func (h *DeviceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.AddDeviceRequest
	if !decode(w, r, &req) {
		return
	}

	var (
		device domain.Device
		err    error
	)
	if req.Kind == string(domain.DeviceKindATM) {
		device, err = h.deviceUC.AddATM(r.Context(), req.ToUseCaseInput())
	} else {
		device, err = h.deviceUC.AddBranch(r.Context(), req.ToUseCaseInput())
	}
	if err != nil {
		writeDomainError(w, "failed to add device", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.DeviceFromDomain(device))
}

// Get retrieves a device by ID.
func (h *DeviceHandler) Get(w http.ResponseWriter, r *http.Request) {
	device, err := h.deviceUC.GetDevice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get device", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DeviceFromDomain(device))
}

// List lists every device.
func (h *DeviceHandler) List(w http.ResponseWriter, r *http.Request) {
	devices, err := h.deviceUC.ListDevices(r.Context())
	if err != nil {
		writeDomainError(w, "failed to list devices", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DevicesFromDomain(devices))
}

// Delete deactivates a device and returns its cash to the bank.
func (h *DeviceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	released, err := h.deviceUC.RemoveDevice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to remove device", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AmountResponse{Amount: released})
}

// Capital reports the bank capital not reserved by any device.
func (h *DeviceHandler) Capital(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.AmountResponse{Amount: h.deviceUC.Capital()})
}

// Withdraw pays out cash to a card holder.
func (h *DeviceHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.cash(w, r, "withdraw", h.deviceUC.WithdrawCash)
}

// Deposit accepts cash for a card holder.
func (h *DeviceHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.cash(w, r, "deposit", h.deviceUC.DepositCash)
}

func (h *DeviceHandler) cash(
	w http.ResponseWriter,
	r *http.Request,
	operation string,
	apply func(context.Context, usecase.CashInput) (*usecase.TransferResult, error),
) {
	var req dto.CashRequest
	if !decode(w, r, &req) {
		return
	}

	result, err := apply(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, "cash "+operation+" failed", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromResult(result))
}

// Balance reads a card account balance at an ATM.
func (h *DeviceHandler) Balance(w http.ResponseWriter, r *http.Request) {
	var req dto.CardAuthRequest
	if !decode(w, r, &req) {
		return
	}

	inquiry, err := h.deviceUC.CheckBalance(r.Context(), chi.URLParam(r, "id"), req.CardID, req.PIN)
	if err != nil {
		writeDomainError(w, "balance inquiry failed", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		Balance:  inquiry.Balance,
		Currency: inquiry.Currency.String(),
	})
}

// Message reads the card owner's latest message at an ATM.
func (h *DeviceHandler) Message(w http.ResponseWriter, r *http.Request) {
	var req dto.CardAuthRequest
	if !decode(w, r, &req) {
		return
	}

	message, err := h.deviceUC.LastMessage(r.Context(), chi.URLParam(r, "id"), req.CardID, req.PIN)
	if err != nil {
		writeDomainError(w, "message inquiry failed", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: message})
}

// BookAppointment books a one-hour appointment at a branch.
func (h *DeviceHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.AppointmentRequest
	if !decode(w, r, &req) {
		return
	}

	appointment, err := h.deviceUC.BookAppointment(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, "failed to book appointment", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AppointmentFromDomain(appointment))
}

// CancelAppointment cancels a booked appointment.
func (h *DeviceHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.AppointmentRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.deviceUC.CancelAppointment(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "id"))); err != nil {
		writeDomainError(w, "failed to cancel appointment", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PayAppointment settles the appointment fee from the given account.
func (h *DeviceHandler) PayAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.AppointmentRequest
	if !decode(w, r, &req) {
		return
	}
	if req.AccountID == "" {
		writeError(w, http.StatusBadRequest, "validation failed", "field AccountID failed required")
		return
	}

	result, err := h.deviceUC.PayAppointment(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "id")), req.AccountID)
	if err != nil {
		writeDomainError(w, "failed to pay appointment", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromResult(result))
}
