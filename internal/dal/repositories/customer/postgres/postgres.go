package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/storefront/internal/dal/postgres"
	"github.com/corray333/backend-labs/storefront/internal/service/models/customer"
)

var customerColumns = []string{
	"customerid",
	"customeremail",
	"customername",
	"customersurname",
}

// CustomerDal represents customer data access layer model.
type CustomerDal struct {
	Id      int64  `db:"customerid"`
	Email   string `db:"customeremail"`
	Name    string `db:"customername"`
	Surname string `db:"customersurname"`
}

// ToModel converts CustomerDal to service layer Customer model.
func (c *CustomerDal) ToModel() customer.Customer {
	return customer.Customer{
		ID:      c.Id,
		Email:   c.Email,
		Name:    c.Name,
		Surname: c.Surname,
	}
}

// PostgresCustomerRepository represents a Postgres customer repository.
type PostgresCustomerRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresCustomerRepository creates a new Postgres customer repository.
func NewPostgresCustomerRepository(conn postgres.GenericConn) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// List returns all customers ordered by name.
func (r *PostgresCustomerRepository) List(ctx context.Context) ([]customer.Customer, error) {
	sql, args, err := r.sb.
		Select(customerColumns...).
		From("customers").
		OrderBy("customername").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	result := make([]customer.Customer, 0)
	for rows.Next() {
		var dal CustomerDal
		if err := rows.Scan(&dal.Id, &dal.Email, &dal.Name, &dal.Surname); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}

		result = append(result, dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Insert stores a customer and returns the row as persisted, including its new id.
func (r *PostgresCustomerRepository) Insert(
	ctx context.Context,
	c customer.Customer,
) (customer.Customer, error) {
	sql, args, err := r.sb.
		Insert("customers").
		Columns("customeremail", "customername", "customersurname").
		Values(c.Email, c.Name, c.Surname).
		Suffix("RETURNING customerid, customeremail, customername, customersurname").
		ToSql()
	if err != nil {
		return customer.Customer{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	var dal CustomerDal
	err = r.conn.QueryRow(ctx, sql, args...).Scan(&dal.Id, &dal.Email, &dal.Name, &dal.Surname)
	if err != nil {
		return customer.Customer{}, fmt.Errorf("failed to insert customer: %w", err)
	}

	return dal.ToModel(), nil
}
