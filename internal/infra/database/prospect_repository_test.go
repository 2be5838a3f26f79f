package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/xavierca1/prospect-crm/internal/entity"
)

var prospectCols = []string{
	"id", "first_name", "last_name", "title", "company", "phone", "email",
	"address", "website", "assigned_to_email", "clients", "notes",
	"follow_up_date", "last_reminded_on", "created_at", "updated_at",
}

func TestProspectRepositoryListOrdersByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now()
	followUp := time.Date(2025, 3, 20, 13, 45, 0, 0, time.UTC) // hora de propósito

	rows := sqlmock.NewRows(prospectCols).
		AddRow("1", "Ana", "Souza", nil, "Acme", nil, nil, nil, nil, "a@x.com", nil, nil, followUp, nil, now, now).
		AddRow("2", "Bruno", "Lima", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, now, now)

	mock.ExpectQuery("SELECT(.+)FROM prospects ORDER BY id").WillReturnRows(rows)

	repo := NewProspectRepository(db)
	prospects, err := repo.List(context.Background())

	assert.NoError(t, err)
	assert.Len(t, prospects, 2)

	// Data vira forma canônica (meia-noite UTC) já na borda do store
	assert.NotNil(t, prospects[0].FollowUpDate)
	assert.Equal(t, time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), *prospects[0].FollowUpDate)
	assert.Nil(t, prospects[0].LastRemindedOn)

	// NULLs viram zero-value, nunca quebram o scan
	assert.Equal(t, "", prospects[1].Company)
	assert.Nil(t, prospects[1].FollowUpDate)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProspectRepositoryMarkRemindedWholeBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	day := time.Date(2025, 3, 12, 18, 30, 0, 0, time.UTC)
	ids := []string{"1", "2"}

	mock.ExpectExec("UPDATE prospects SET last_reminded_on").
		WithArgs(entity.DateOnly(day), pq.Array(ids)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	repo := NewProspectRepository(db)
	err = repo.MarkReminded(context.Background(), ids, day)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestProspectRepositoryMarkRemindedPartialIsError - marcar metade do lote
// não é sucesso: o coordenador precisa tratar como falha do lote inteiro
func TestProspectRepositoryMarkRemindedPartialIsError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	day := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	ids := []string{"1", "2", "3"}

	mock.ExpectExec("UPDATE prospects SET last_reminded_on").
		WithArgs(entity.DateOnly(day), pq.Array(ids)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewProspectRepository(db)
	err = repo.MarkReminded(context.Background(), ids, day)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "marcação parcial")
}

func TestProspectRepositoryMarkRemindedEmptyBatchIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewProspectRepository(db)
	err = repo.MarkReminded(context.Background(), nil, time.Now())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet()) // nenhum SQL disparado
}
