package postgresql

import (
	"context"
	"fmt"

	"github.com/hoangson-hr/payday-backend-go/internal/domain/employee"
	"github.com/hoangson-hr/payday-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, role_title, status, base_salary, insurance_salary, hourly_rate, hire_date
		FROM employees
		WHERE id = $1
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.FullName, &e.RoleTitle, &e.Status,
		&e.BaseSalary, &e.InsuranceSalary, &e.HourlyRate, &e.HireDate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) ListPayable(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, role_title, status, base_salary, insurance_salary, hourly_rate, hire_date
		FROM employees
		WHERE status IN ($1, $2)
		ORDER BY id
	`

	rows, err := q.Query(ctx, query, employee.StatusActive, employee.StatusProbation)
	if err != nil {
		return nil, fmt.Errorf("failed to list payable employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID, &e.FullName, &e.RoleTitle, &e.Status,
			&e.BaseSalary, &e.InsuranceSalary, &e.HourlyRate, &e.HireDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, nil
}
