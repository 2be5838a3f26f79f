package entity

import "time"

// DateOnly canoniza um instante para data de calendário (meia-noite UTC).
// Todas as comparações de datas do sistema usam essa forma canônica,
// então "hoje" calculado uma vez vale para o run inteiro.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay compara duas datas de calendário ignorando hora e fuso.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
