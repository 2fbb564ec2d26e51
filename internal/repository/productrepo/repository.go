package productrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"goshop/internal/domain"
	apperror "goshop/internal/errors"
	"goshop/internal/pkg/cache"
	"goshop/internal/pkg/database"
	"goshop/internal/pkg/logger"
)

// ProductRepository implementa a interface domain.ProductRepository.
// Ela contém as conexões necessárias para acessar dados (DB e Cache).
type ProductRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewProductRepository cria e retorna uma nova instância do Repositório.
// Aqui injetamos as dependências de Infraestrutura (DB e Cache).
func NewProductRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *ProductRepository {
	return &ProductRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Chave de cache para produtos individuais (estratégia Cache-Aside).
const productCacheKey = "product:%s"

const insertProductSQL = `INSERT INTO products (id, name, quantity, created_at, updated_at)
                          VALUES ($1, $2, $3, $4, $5)`

// Save persiste um novo Produto no banco de dados.
// O ID (uuid) e os timestamps são atribuídos aqui, na camada de persistência.
func (r *ProductRepository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	product.ID = uuid.NewString()
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := r.DB.ExecContext(ctxTimeout, insertProductSQL,
		product.ID,
		product.Name,
		product.Quantity,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		// Backstop da unicidade de products.name (UNIQUE constraint).
		if database.IsUniqueViolation(err) {
			return domain.Product{}, apperror.NewConflictError("O nome já está em uso.")
		}
		r.logger.Error("Falha ao inserir produto no DB.", err)
		return domain.Product{}, apperror.NewDBError("failed to insert product", err)
	}

	r.logger.Info("Produto salvo com sucesso no repositório.", map[string]interface{}{"product_id": product.ID, "name": product.Name})
	return product, nil
}

const findProductByIDSQL = `SELECT id, name, quantity, created_at, updated_at
                            FROM products WHERE id = $1`

// FindByID busca um produto pelo ID, utilizando a estratégia Cache-Aside.
// Ausência não é erro: retorna found=false quando o ID não existe.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.Product, bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(productCacheKey, id)
	var product domain.Product

	// --- 1. Cache-Aside (READ) ---
	cachedData, err := r.Cache.Get(ctxTimeout, key)
	if err == nil {
		// Cache HIT
		if json.Unmarshal([]byte(cachedData), &product) == nil {
			return product, true, nil
		}
		// Se a desserialização falhar, seguimos para o DB
	} else if err != cache.ErrCacheMiss {
		// Falha real de cache (e.g., conexão perdida): o DB continua sendo
		// a fonte de verdade, então apenas registramos e seguimos.
		r.logger.Debug("Falha ao ler produto do cache; consultando DB.", map[string]interface{}{"key": key})
	}

	// --- 2. Busca no Banco de Dados (PostgreSQL) ---
	row := r.DB.QueryRowContext(ctxTimeout, findProductByIDSQL, id)

	err = row.Scan(
		&product.ID,
		&product.Name,
		&product.Quantity,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, false, nil
	}
	if err != nil {
		r.logger.Error("Falha ao buscar produto por ID no DB.", err)
		return domain.Product{}, false, apperror.NewDBError("failed to find product by id", err)
	}

	// --- 3. Cache-Aside (WRITE) ---
	// Se encontrado no DB, populamos o cache para futuras requisições.
	if productJSON, marshalErr := json.Marshal(product); marshalErr == nil {
		r.Cache.Set(ctxTimeout, key, productJSON, r.CacheTTL)
	}

	return product, true, nil
}

const findProductByNameSQL = `SELECT id, name, quantity, created_at, updated_at
                              FROM products WHERE name = $1`

// FindByName busca um produto pelo nome exato (unicidade garante no máximo um).
// Ausência não é erro: retorna found=false quando o nome não existe.
func (r *ProductRepository) FindByName(ctx context.Context, name string) (domain.Product, bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	row := r.DB.QueryRowContext(ctxTimeout, findProductByNameSQL, name)

	var product domain.Product
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Quantity,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, false, nil
	}
	if err != nil {
		r.logger.Error("Falha ao buscar produto por nome no DB.", err)
		return domain.Product{}, false, apperror.NewDBError("failed to find product by name", err)
	}

	return product, true, nil
}

const findAllProductsSQL = `SELECT id, name, quantity, created_at, updated_at
                            FROM products ORDER BY created_at ASC`

const findProductsByNameLikeSQL = `SELECT id, name, quantity, created_at, updated_at
                                   FROM products
                                   WHERE name LIKE '%' || $1 || '%'
                                   ORDER BY created_at ASC`

// FindAll lista os produtos, opcionalmente filtrando por substring do nome.
// Filtro vazio retorna todos os produtos. A comparação é LIKE (case-sensitive,
// collation padrão do PostgreSQL) e a ordem é de inserção (created_at ASC).
func (r *ProductRepository) FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var rows *sql.Rows
	var err error

	if filter.Name == "" {
		rows, err = r.DB.QueryContext(ctxTimeout, findAllProductsSQL)
	} else {
		rows, err = r.DB.QueryContext(ctxTimeout, findProductsByNameLikeSQL, filter.Name)
	}

	if err != nil {
		r.logger.Error("Falha ao listar produtos no DB.", err)
		return nil, apperror.NewDBError("failed to list products", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Quantity,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			r.logger.Error("Falha ao mapear linha de produto.", err)
			return nil, apperror.NewDBError("failed to scan product row", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate product rows", err)
	}

	return products, nil
}

const deleteProductSQL = `DELETE FROM products WHERE id = $1`

// Delete remove definitivamente um produto do banco de dados e invalida a
// entrada de cache correspondente. Operação irreversível (sem soft-delete).
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if _, err := r.DB.ExecContext(ctxTimeout, deleteProductSQL, id); err != nil {
		r.logger.Error("Falha ao deletar produto no DB.", err)
		return apperror.NewDBError("failed to delete product", err)
	}

	// Invalida o cache para que leituras futuras não vejam o registro removido.
	key := fmt.Sprintf(productCacheKey, id)
	if err := r.Cache.Delete(ctxTimeout, key); err != nil {
		r.logger.Debug("Falha ao invalidar cache do produto removido.", map[string]interface{}{"key": key})
	}

	r.logger.Info("Produto removido do repositório.", map[string]interface{}{"product_id": id})
	return nil
}
