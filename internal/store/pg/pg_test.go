package pg

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oluwatobiiloba/inventory-api/internal/audit"
	"github.com/oluwatobiiloba/inventory-api/internal/auth"
	"github.com/oluwatobiiloba/inventory-api/internal/product"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db), mock
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: pgErrUniqueViolation, ConstraintName: "products_sku_key"}
}

func TestUsersCreateDuplicateEmail(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("insert into users").
		WithArgs(sqlmock.AnyArg(), "ada@example.com", sqlmock.AnyArg(), "user", "Ada", "Lovelace").
		WillReturnError(uniqueViolation())

	err := store.Users().Create(context.Background(), &auth.User{
		Email:        "ada@example.com",
		PasswordHash: "hash",
		Role:         auth.RoleUser,
		FirstName:    "Ada",
		LastName:     "Lovelace",
	})
	if !errors.Is(err, auth.ErrConflict) {
		t.Fatalf("expected auth.ErrConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUsersFindByEmail(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "first_name", "last_name", "created_at", "updated_at"}).
		AddRow("u1", "ada@example.com", "hash", "clerk", "Ada", "Lovelace", now, now)
	mock.ExpectQuery("select id, email, password_hash, role.*from users").
		WithArgs("ada@example.com").
		WillReturnRows(rows)

	u, err := store.Users().FindByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if u.Role != auth.RoleClerk {
		t.Fatalf("role = %s", u.Role)
	}

	mock.ExpectQuery("select id, email, password_hash, role.*from users").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	if _, err := store.Users().FindByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, auth.ErrNotFound) {
		t.Fatalf("expected auth.ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUsersExistsWithRole(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("select exists").
		WithArgs("u1", "clerk").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	ok, err := store.Users().ExistsWithRole(context.Background(), "u1", auth.RoleClerk)
	if err != nil {
		t.Fatalf("ExistsWithRole: %v", err)
	}
	if ok {
		t.Fatal("expected false for diverged role")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProductsCreateDuplicateSKU(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("insert into products").
		WithArgs(sqlmock.AnyArg(), "Widget", "a widget", 9.99, 5, "X1").
		WillReturnError(uniqueViolation())

	err := store.Products().Create(context.Background(), &product.Product{
		Name:        "Widget",
		Description: "a widget",
		Price:       9.99,
		Stock:       5,
		SKU:         "X1",
	})
	if !errors.Is(err, product.ErrConflict) {
		t.Fatalf("expected product.ErrConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProductsList(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`select count\(\*\) from products`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery("select id, name, description, price, stock, sku.*from products").
		WithArgs(10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "price", "stock", "sku", "created_at", "updated_at"}).
			AddRow("p11", "Widget 11", "", 1.0, 1, "W11", now, now).
			AddRow("p12", "Widget 12", "", 2.0, 2, "W12", now, now))

	items, total, err := store.Products().List(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 12 {
		t.Fatalf("total = %d", total)
	}
	if len(items) != 2 || items[0].SKU != "W11" {
		t.Fatalf("unexpected page: %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProductsUpdateNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("update products").
		WithArgs("missing", "Widget", "", 1.0, 1, "X1").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

	err := store.Products().Update(context.Background(), &product.Product{
		ID: "missing", Name: "Widget", Price: 1.0, Stock: 1, SKU: "X1",
	})
	if !errors.Is(err, product.ErrNotFound) {
		t.Fatalf("expected product.ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProductsDelete(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("delete from products").
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := store.Products().Delete(context.Background(), "p1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	mock.ExpectExec("delete from products").
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := store.Products().Delete(context.Background(), "p1"); !errors.Is(err, product.ErrNotFound) {
		t.Fatalf("expected product.ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAuditAppendAndList(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectExec("insert into audit_log").
		WithArgs("rec-1", "create", "products", "p1", "actor-1", []byte(`{"sku":"X1"}`), now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.AuditLog().Append(context.Background(), &audit.Record{
		ID:         "rec-1",
		Action:     audit.ActionCreate,
		Resource:   "products",
		ResourceID: "p1",
		ActorID:    "actor-1",
		Changes:    map[string]any{"sku": "X1"},
		OccurredAt: now,
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	mock.ExpectQuery("select id, action, resource.*from audit_log").
		WithArgs("products", 100).
		WillReturnRows(sqlmock.NewRows([]string{"id", "action", "resource", "resource_id", "actor_id", "changes", "occurred_at"}).
			AddRow("rec-1", "create", "products", "p1", "actor-1", []byte(`{"sku":"X1"}`), now))

	recs, err := store.AuditLog().ListByResource(context.Background(), "products", 0)
	if err != nil {
		t.Fatalf("ListByResource: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].Changes["sku"] != "X1" {
		t.Fatalf("changes not decoded: %v", recs[0].Changes)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
