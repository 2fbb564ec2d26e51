package product

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"goshop/internal/domain"
	apperror "goshop/internal/errors"
	"goshop/internal/pkg/logger"
)

// ProductService define o contrato que o Handler espera da camada de Serviço.
type ProductService interface {
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	GetProductByID(ctx context.Context, id string) (domain.Product, bool, error)
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// CreateProductRequest representa o payload de entrada para a criação de produto.
type CreateProductRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Handler agrupa todos os métodos de Handler do produto.
type Handler struct {
	Service ProductService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ProductService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		// Sucesso
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)

		h.Logger.Debug("Requisição concluída com sucesso.", map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": successStatus,
		})

		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
			}
		}
		return
	}

	// TRATAMENTO DE ERROS
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		// Erros de cliente (4xx) são comportamento esperado
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	errorResponse := domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse)
}

// --- Handlers de Produto ---

// CreateProductHandler lida com a requisição POST /v1/products.
// @Summary Cria um novo produto
// @Description Cria um produto com nome único e quantidade não-negativa. O ID é atribuído pelo sistema.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body CreateProductRequest true "Dados do produto (nome e quantidade)"
// @Success 201 {object} domain.Product "Produto criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 409 {object} domain.ErrorResponse "Nome já em uso"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /v1/products [post]
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusCreated)
		return
	}

	product := domain.Product{
		Name:     req.Name,
		Quantity: req.Quantity,
	}

	createdProduct, err := h.Service.CreateProduct(ctx, product)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	h.handleServiceResponse(w, r, createdProduct, nil, http.StatusCreated)
}

// ListProductsHandler lida com a requisição GET /v1/products.
// @Summary Lista os produtos do catálogo
// @Description Retorna todos os produtos; o parâmetro opcional "name" filtra por substring do nome.
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param name query string false "Substring do nome do produto"
// @Success 200 {array} domain.Product "Lista de produtos"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /v1/products [get]
func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := domain.ProductFilter{
		Name: r.URL.Query().Get("name"),
	}

	products, err := h.Service.ListProducts(ctx, filter)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, products, nil, http.StatusOK)
}

// ProductsCollectionHandler despacha POST (create) e GET (list) em /v1/products.
func (h *Handler) ProductsCollectionHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.CreateProductHandler(w, r)
	case http.MethodGet:
		h.ListProductsHandler(w, r)
	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// GetProductByIDHandler lida com a requisição GET /v1/products/{id}.
// @Summary Busca um produto pelo ID
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 200 {object} domain.Product "Produto encontrado"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /v1/products/{id} [get]
func (h *Handler) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := extractProductID(r.URL.Path)
	if id == "" {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("O ID do produto é obrigatório."), http.StatusOK)
		return
	}

	product, found, err := h.Service.GetProductByID(ctx, id)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if !found {
		// A busca no serviço é pura (ausência não é erro); a tradução para
		// 404 acontece aqui, na fronteira HTTP.
		h.handleServiceResponse(w, r, nil, apperror.NewNotFoundError("Produto não foi encontrado."), http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, product, nil, http.StatusOK)
}

// DeleteProductHandler lida com a requisição DELETE /v1/products/{id}.
// @Summary Remove um produto pelo ID
// @Description Remoção definitiva; não há soft-delete nem recuperação.
// @Tags products
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 204 "Produto removido"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /v1/products/{id} [delete]
func (h *Handler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := extractProductID(r.URL.Path)
	if id == "" {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("O ID do produto é obrigatório."), http.StatusNoContent)
		return
	}

	if err := h.Service.DeleteProduct(ctx, id); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
		return
	}

	h.handleServiceResponse(w, r, nil, nil, http.StatusNoContent)
}

// ProductItemHandler despacha GET (busca) e DELETE (remoção) em /v1/products/{id}.
func (h *Handler) ProductItemHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetProductByIDHandler(w, r)
	case http.MethodDelete:
		h.DeleteProductHandler(w, r)
	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// extractProductID extrai o segmento de ID do caminho /v1/products/{id}.
func extractProductID(path string) string {
	id := strings.TrimPrefix(path, "/v1/products/")
	return strings.Trim(id, "/")
}
