package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfarias-dev/carteira/internal/importer"
	"github.com/jfarias-dev/carteira/internal/transaction"
)

func TestService_Parse(t *testing.T) {
	statement := strings.Join([]string{
		"Extrato de conta",
		"",
		"data;descricao;valor",
		"05/01/2024;COMPRA MERCADO;-58,74",
		"10/01/2024;TRANSFERENCIA RECEBIDA;1.234,56",
		"15/01/2024;PAGAMENTO CARTAO;-1.000,00",
		"Saldo final;;175,82",
	}, "\n")

	svc := importer.NewService()

	got, err := svc.Parse(strings.NewReader(statement))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, int64(5874), got[0].Value)
	assert.Equal(t, transaction.TypeExpense, got[0].Type)
	assert.Equal(t, "COMPRA MERCADO", got[0].Description)
	assert.Equal(t, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), got[0].CreatedAt)

	assert.Equal(t, int64(123456), got[1].Value)
	assert.Equal(t, transaction.TypeIncome, got[1].Type)

	assert.Equal(t, int64(100000), got[2].Value)
	assert.Equal(t, transaction.TypeExpense, got[2].Type)
}

func TestService_Parse_HeaderCaseInsensitive(t *testing.T) {
	statement := "Data;Descricao;Valor\n02/03/2024;PADARIA;-12,50\n"

	svc := importer.NewService()

	got, err := svc.Parse(strings.NewReader(statement))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1250), got[0].Value)
}

func TestService_Parse_MissingHeader(t *testing.T) {
	svc := importer.NewService()

	_, err := svc.Parse(strings.NewReader("a;b;c\n1;2;3\n"))
	assert.Error(t, err)
}

func TestService_Parse_MissingDescription(t *testing.T) {
	statement := "data;descricao;valor\n05/01/2024;;-10,00\n"

	svc := importer.NewService()

	_, err := svc.Parse(strings.NewReader(statement))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing description")
}

func TestService_Parse_SkipsZeroAndUnparseableRows(t *testing.T) {
	statement := strings.Join([]string{
		"data;descricao;valor",
		"05/01/2024;ESTORNO;0,00",
		"not-a-date;RESUMO;10,00",
		"07/01/2024;COMPRA;abc",
		"08/01/2024;COMPRA VALIDA;-5,00",
	}, "\n")

	svc := importer.NewService()

	got, err := svc.Parse(strings.NewReader(statement))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "COMPRA VALIDA", got[0].Description)
}

func TestService_Parse_Windows1252Input(t *testing.T) {
	// "CARTÃO" with 0xC3 as the single Windows-1252 byte for Ã
	raw := []byte("data;descricao;valor\n05/01/2024;CART\xc3O CR\xc9DITO;-30,00\n")

	svc := importer.NewService()

	got, err := svc.Parse(strings.NewReader(string(raw)))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "CARTÃO CRÉDITO", got[0].Description)
}

func TestService_Parse_UTF8BOM(t *testing.T) {
	statement := "\ufeffdata;descricao;valor\n05/01/2024;PADARIA;-4,50\n"

	svc := importer.NewService()

	got, err := svc.Parse(strings.NewReader(statement))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "PADARIA", got[0].Description)
}
