package productservice

import (
	"context"

	"goshop/internal/domain"
	apperror "goshop/internal/errors"
	"goshop/internal/pkg/logger"
)

// Service implementa a interface domain.ProductService: o catálogo de
// produtos, dono exclusivo da unicidade de nome e do ciclo de vida de Product.
type Service struct {
	repo   domain.ProductRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Produto.
func NewService(repo domain.ProductRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateProduct cria um novo produto no catálogo.
// Fluxo: valida entrada → rejeita nome duplicado (sem chamar o Save do
// repositório) → persiste. A UNIQUE constraint do DB é o backstop contra
// criações concorrentes com o mesmo nome.
func (s *Service) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	// 1. Validação de Regras de Negócio
	if product.Name == "" {
		return domain.Product{}, apperror.NewValidationError("O nome do produto é obrigatório.")
	}
	if product.Quantity < 0 {
		return domain.Product{}, apperror.NewValidationError("A quantidade do produto não pode ser negativa.")
	}

	// 2. Checagem de unicidade pelo nome (caminho rápido)
	_, found, err := s.repo.FindByName(ctx, product.Name)
	if err != nil {
		return domain.Product{}, err
	}
	if found {
		s.logger.Debug("Tentativa de criar produto com nome duplicado.", map[string]interface{}{"name": product.Name})
		return domain.Product{}, apperror.NewConflictError("O nome já está em uso.")
	}

	// 3. Delegação para a Camada de Persistência (ID atribuído pelo repositório)
	createdProduct, err := s.repo.Save(ctx, product)
	if err != nil {
		return domain.Product{}, err
	}

	s.logger.Info("Produto criado com sucesso.", map[string]interface{}{"product_id": createdProduct.ID, "name": createdProduct.Name})
	return createdProduct, nil
}

// GetProductByID busca um produto pelo ID.
// Busca pura: ausência é sinalizada com found=false, nunca com erro.
func (s *Service) GetProductByID(ctx context.Context, id string) (domain.Product, bool, error) {
	return s.repo.FindByID(ctx, id)
}

// GetProductByName busca um produto pelo nome exato.
// Busca pura: ausência é sinalizada com found=false, nunca com erro.
func (s *Service) GetProductByName(ctx context.Context, name string) (domain.Product, bool, error) {
	return s.repo.FindByName(ctx, name)
}

// ListProducts lista os produtos do catálogo.
// filter.Name não vazio restringe aos produtos cujo nome contém a substring;
// vazio retorna todos.
func (s *Service) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.repo.FindAll(ctx, filter)
}

// DeleteProduct remove um produto pelo ID.
// Operação buscar-então-agir: se o ID não existe, falha com NotFoundError e o
// Delete do repositório não é chamado. A remoção é definitiva e irreversível.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	_, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return apperror.NewNotFoundError("Produto não foi encontrado.")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Produto removido com sucesso.", map[string]interface{}{"product_id": id})
	return nil
}
