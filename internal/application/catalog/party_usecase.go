package catalog

import (
	"context"
	"time"

	"github.com/jhoicas/pecas-api/internal/application/dto"
	"github.com/jhoicas/pecas-api/internal/domain"
	"github.com/jhoicas/pecas-api/internal/domain/entity"
	"github.com/jhoicas/pecas-api/internal/domain/repository"
)

// SupplierUseCase alta, consulta y baja lógica de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	if err := cleanParty(&in); err != nil {
		return nil, err
	}
	now := time.Now()
	s := &entity.Supplier{Name: in.Name, TaxID: in.TaxID, Email: in.Email, Phone: in.Phone, Active: true, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return supplierResponse(s), nil
}

func (uc *SupplierUseCase) GetByID(ctx context.Context, id int64) (*dto.PartyResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound("proveedor %d no encontrado", id)
	}
	return supplierResponse(s), nil
}

func (uc *SupplierUseCase) List(ctx context.Context, includeInactive bool) ([]dto.PartyResponse, error) {
	list, err := uc.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartyResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *supplierResponse(s))
	}
	return out, nil
}

func (uc *SupplierUseCase) Deactivate(ctx context.Context, id int64) error {
	if _, err := uc.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.repo.SetActive(ctx, id, false)
}

// CustomerUseCase alta, consulta y baja lógica de clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	if err := cleanParty(&in); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Customer{Name: in.Name, TaxID: in.TaxID, Email: in.Email, Phone: in.Phone, Active: true, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return customerResponse(c), nil
}

func (uc *CustomerUseCase) GetByID(ctx context.Context, id int64) (*dto.PartyResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("cliente %d no encontrado", id)
	}
	return customerResponse(c), nil
}

func (uc *CustomerUseCase) List(ctx context.Context, includeInactive bool) ([]dto.PartyResponse, error) {
	list, err := uc.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartyResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *customerResponse(c))
	}
	return out, nil
}

func (uc *CustomerUseCase) Deactivate(ctx context.Context, id int64) error {
	if _, err := uc.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.repo.SetActive(ctx, id, false)
}

// PaymentMethodUseCase alta, consulta y baja lógica de formas de pago.
type PaymentMethodUseCase struct {
	repo repository.PaymentMethodRepository
}

// NewPaymentMethodUseCase construye el caso de uso.
func NewPaymentMethodUseCase(repo repository.PaymentMethodRepository) *PaymentMethodUseCase {
	return &PaymentMethodUseCase{repo: repo}
}

func (uc *PaymentMethodUseCase) Create(ctx context.Context, in dto.CreatePaymentMethodRequest) (*dto.PaymentMethodResponse, error) {
	if err := dto.Required("nombre", &in.Name, dto.MaxNameLen); err != nil {
		return nil, err
	}
	if err := dto.Optional("descripción", &in.Description, dto.MaxDescriptionLen); err != nil {
		return nil, err
	}
	m := &entity.PaymentMethod{Name: in.Name, Description: in.Description, Active: true, CreatedAt: time.Now()}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return paymentMethodResponse(m), nil
}

func (uc *PaymentMethodUseCase) GetByID(ctx context.Context, id int64) (*dto.PaymentMethodResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NotFound("forma de pago %d no encontrada", id)
	}
	return paymentMethodResponse(m), nil
}

func (uc *PaymentMethodUseCase) List(ctx context.Context, includeInactive bool) ([]dto.PaymentMethodResponse, error) {
	list, err := uc.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentMethodResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *paymentMethodResponse(m))
	}
	return out, nil
}

func (uc *PaymentMethodUseCase) Deactivate(ctx context.Context, id int64) error {
	if _, err := uc.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.repo.SetActive(ctx, id, false)
}

// cleanParty normaliza y valida los campos comunes de clientes y proveedores.
func cleanParty(in *dto.CreatePartyRequest) error {
	if err := dto.Required("nombre", &in.Name, dto.MaxNameLen); err != nil {
		return err
	}
	if err := dto.Optional("documento", &in.TaxID, dto.MaxTaxIDLen); err != nil {
		return err
	}
	if err := dto.Email("email", &in.Email, false); err != nil {
		return err
	}
	return dto.Optional("teléfono", &in.Phone, dto.MaxPhoneLen)
}

func supplierResponse(s *entity.Supplier) *dto.PartyResponse {
	return &dto.PartyResponse{ID: s.ID, Name: s.Name, TaxID: s.TaxID, Email: s.Email, Phone: s.Phone, Active: s.Active, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
}

func customerResponse(c *entity.Customer) *dto.PartyResponse {
	return &dto.PartyResponse{ID: c.ID, Name: c.Name, TaxID: c.TaxID, Email: c.Email, Phone: c.Phone, Active: c.Active, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func paymentMethodResponse(m *entity.PaymentMethod) *dto.PaymentMethodResponse {
	return &dto.PaymentMethodResponse{ID: m.ID, Name: m.Name, Description: m.Description, Active: m.Active, CreatedAt: m.CreatedAt}
}
