package domain

import (
	"context"
	"time"
)

// Product representa o item do catálogo (a Entidade).
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductFilter define os parâmetros de busca da listagem.
// Name vazio significa "sem filtro" (retorna todos os produtos).
type ProductFilter struct {
	Name string
}

// --- Interfaces de Contrato (O CORAÇÃO DA ARQUITETURA LIMPA) ---

// ProductService é a interface que a camada de Serviço (Business Logic) DEVE implementar.
// Ela define o que o Handler (Camada API) pode pedir para a camada de Serviço fazer.
// As buscas puras (GetByID, GetByName) sinalizam ausência com found=false;
// apenas DeleteProduct converte ausência em erro (NotFound).
type ProductService interface {
	CreateProduct(ctx context.Context, product Product) (Product, error)
	GetProductByID(ctx context.Context, id string) (product Product, found bool, err error)
	GetProductByName(ctx context.Context, name string) (product Product, found bool, err error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// ProductRepository é a interface que a camada de Repositório (Data Access) DEVE implementar.
// Ela define o que a camada de Serviço pode pedir para a camada de Persistência (DB/Cache) fazer.
type ProductRepository interface {
	Save(ctx context.Context, product Product) (Product, error)
	FindByID(ctx context.Context, id string) (product Product, found bool, err error)
	FindByName(ctx context.Context, name string) (product Product, found bool, err error)
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, error)
	Delete(ctx context.Context, id string) error
}
