package model

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestGenerateReceiptNumber(t *testing.T) {
	id := uuid.MustParse("3f2a9c1e-0000-4000-8000-000000000000")
	at := time.Date(2025, 2, 3, 14, 5, 9, 0, time.UTC)

	got := GenerateReceiptNumber(at, id)
	assert.Equal(t, "RCPT-20250203140509-3f2a9c1e", got)
	assert.Regexp(t, regexp.MustCompile(`^RCPT-\d{14}-[0-9a-f]{8}$`), GenerateReceiptNumber(time.Now(), uuid.New()))
}

func TestBeforeSave_DerivesYearAndKeepsNumber(t *testing.T) {
	p := &PaymentModel{
		PaymentUserID: uuid.New(),
		PaymentMonth:  datatypesDate(2023, time.July),
	}
	assert.NoError(t, p.BeforeSave(nil))
	assert.Equal(t, 2023, p.PaymentYear)
	assert.Equal(t, PaymentStatusUnpaid, p.PaymentStatus)
	number := p.PaymentReceiptNumber
	assert.NotEmpty(t, number)

	p.PaymentMonth = datatypesDate(2024, time.January)
	assert.NoError(t, p.BeforeSave(nil))
	assert.Equal(t, 2024, p.PaymentYear)
	assert.Equal(t, number, p.PaymentReceiptNumber)
}

func datatypesDate(year int, month time.Month) datatypes.Date {
	return datatypes.Date(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}
