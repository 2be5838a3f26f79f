package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/xavierca1/prospect-crm/internal/entity"
)

type ProspectRepository struct {
	DB *sql.DB
}

func NewProspectRepository(db *sql.DB) *ProspectRepository {
	return &ProspectRepository{DB: db}
}

const prospectColumns = `
	id, first_name, last_name, title, company, phone, email, address, website,
	assigned_to_email, clients, notes, follow_up_date, last_reminded_on,
	created_at, updated_at`

// List retorna todos os prospects SEMPRE em ORDER BY id.
// O Supabase não promete ordem nenhuma; o digest precisa de leitura estável
// para a mesma entrada gerar sempre a mesma mensagem.
func (r *ProspectRepository) List(ctx context.Context) ([]entity.Prospect, error) {
	query := `SELECT` + prospectColumns + ` FROM prospects ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prospects []entity.Prospect
	for rows.Next() {
		p, err := scanProspect(rows)
		if err != nil {
			return nil, err
		}
		prospects = append(prospects, *p)
	}
	return prospects, rows.Err()
}

func (r *ProspectRepository) FindByID(ctx context.Context, id string) (*entity.Prospect, error) {
	query := `SELECT` + prospectColumns + ` FROM prospects WHERE id = $1`
	return scanProspect(r.DB.QueryRowContext(ctx, query, id))
}

func (r *ProspectRepository) Create(ctx context.Context, p *entity.Prospect) error {
	query := `
		INSERT INTO prospects (
			id, first_name, last_name, title, company, phone, email, address,
			website, assigned_to_email, clients, notes, follow_up_date,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
	`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		p.ID,
		p.FirstName,
		p.LastName,
		nullString(p.Title),
		nullString(p.Company),
		nullString(p.Phone),
		nullString(p.Email),
		nullString(p.Address),
		nullString(p.Website),
		nullString(p.AssignedToEmail),
		nullString(p.Clients),
		nullString(p.Notes),
		nullDate(p.FollowUpDate),
	)
	return err
}

func (r *ProspectRepository) Update(ctx context.Context, p *entity.Prospect) error {
	query := `
		UPDATE prospects SET
			first_name = $2,
			last_name = $3,
			title = $4,
			company = $5,
			phone = $6,
			email = $7,
			address = $8,
			website = $9,
			assigned_to_email = $10,
			clients = $11,
			notes = $12,
			follow_up_date = $13,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.DB.ExecContext(
		ctx,
		query,
		p.ID,
		p.FirstName,
		p.LastName,
		nullString(p.Title),
		nullString(p.Company),
		nullString(p.Phone),
		nullString(p.Email),
		nullString(p.Address),
		nullString(p.Website),
		nullString(p.AssignedToEmail),
		nullString(p.Clients),
		nullString(p.Notes),
		nullDate(p.FollowUpDate),
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ProspectRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM prospects WHERE id = $1`, id)
	return err
}

// MarkReminded grava last_reminded_on = day para o lote inteiro num ÚNICO
// UPDATE. Statement único = ou o lote todo é marcado, ou nada é (não existe
// "metade do digest marcado").
func (r *ProspectRepository) MarkReminded(ctx context.Context, ids []string, day time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	query := `UPDATE prospects SET last_reminded_on = $1, updated_at = NOW() WHERE id = ANY($2)`

	result, err := r.DB.ExecContext(ctx, query, entity.DateOnly(day), pq.Array(ids))
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected != int64(len(ids)) {
		return fmt.Errorf("marcação parcial: %d de %d prospects atualizados", affected, len(ids))
	}
	return nil
}

// scanner cobre *sql.Row e *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanProspect(s scanner) (*entity.Prospect, error) {
	var p entity.Prospect
	var title, company, phone, email, address, website, assignedTo, clients, notes sql.NullString
	var followUp, lastReminded sql.NullTime

	err := s.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&title,
		&company,
		&phone,
		&email,
		&address,
		&website,
		&assignedTo,
		&clients,
		&notes,
		&followUp,
		&lastReminded,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Title = title.String
	p.Company = company.String
	p.Phone = phone.String
	p.Email = email.String
	p.Address = address.String
	p.Website = website.String
	p.AssignedToEmail = assignedTo.String
	p.Clients = clients.String
	p.Notes = notes.String

	// Datas viram forma canônica (meia-noite UTC) já na borda do store;
	// o resto do pipeline nunca lida com hora/fuso.
	if followUp.Valid {
		d := entity.DateOnly(followUp.Time)
		p.FollowUpDate = &d
	}
	if lastReminded.Valid {
		d := entity.DateOnly(lastReminded.Time)
		p.LastRemindedOn = &d
	}

	return &p, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := entity.DateOnly(*t)
	return &d
}
