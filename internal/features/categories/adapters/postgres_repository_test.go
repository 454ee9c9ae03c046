package adapters

import (
	"context"
	"regexp"
	"testing"

	"storefront-api/internal/features/categories/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PostgresCategoryRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlmock")
	return NewPostgresCategoryRepository(db), mock
}

func TestUpdate_RehomesProducts(t *testing.T) {
	repo, mock := newMockRepo(t)

	category := domain.Category{
		ID:          "b4a7e3c2-91d5-4c6f-8a2b-7e1f9d0c5a3b",
		DisplayName: "Shirts",
		Href:        "shirts",
		Page:        true,
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE categories SET").
		WithArgs("Shirts", "shirts", true, category.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE products SET category = $1 WHERE category = $2`)).
		WithArgs("shirts", "tees").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), category, "tees")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_CascadesProductsAndVariants(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM product_variants").
		WithArgs("tees").
		WillReturnResult(sqlmock.NewResult(0, 6))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM products WHERE category = $1`)).
		WithArgs("tees").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM categories WHERE id = $1`)).
		WithArgs("b4a7e3c2-91d5-4c6f-8a2b-7e1f9d0c5a3b").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), "b4a7e3c2-91d5-4c6f-8a2b-7e1f9d0c5a3b", "tees")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFoundRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM product_variants").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM products WHERE category = $1`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM categories WHERE id = $1`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), "b4a7e3c2-91d5-4c6f-8a2b-7e1f9d0c5a3b", "tees")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
