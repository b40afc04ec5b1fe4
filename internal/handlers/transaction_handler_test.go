package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"txn-query/internal/dto"
	"txn-query/internal/models"
	"txn-query/internal/query"
	"txn-query/internal/services"
	"txn-query/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionHandlerTestSuite struct {
	suite.Suite
	echo        *echo.Echo
	ctrl        *gomock.Controller
	mockService *service_mocks.MockTransactionQueryServiceInterface
}

func TestTransactionHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}

func (s *TransactionHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.ctrl = gomock.NewController(s.T())
	s.mockService = service_mocks.NewMockTransactionQueryServiceInterface(s.ctrl)

	NewTransactionHandler(s.mockService).RegisterRoutes(s.echo.Group("/api/v1"))
}

func (s *TransactionHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *TransactionHandlerTestSuite) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func (s *TransactionHandlerTestSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	return response.Error.Code
}

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{TransactionID: "1", TransactionDate: "2019-01-01", Amount: decimal.NewFromInt(100), TransactionType: models.TransactionTypeDebit, Description: "Grocery shopping", MerchantName: "Supermarket", CardType: "Visa"},
		{TransactionID: "2", TransactionDate: "2019-02-02", Amount: decimal.NewFromInt(50), TransactionType: models.TransactionTypeCredit, Description: "Product return", MerchantName: "Online Store", CardType: "MasterCard"},
	}
}

// Import

func (s *TransactionHandlerTestSuite) TestImportTransactions_Success() {
	body := `{"transactions":[
		{"transaction_id":"1","transaction_date":"2019-01-01","transaction_amount":100,"transaction_type":"debit","transaction_description":"Grocery shopping","merchant_name":"Supermarket","card_type":"Visa"},
		{"transaction_id":" 2 ","transaction_date":"2019-02-02","transaction_amount":"50.25","transaction_type":"CREDIT"}
	]}`

	s.mockService.EXPECT().
		Import(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, txns []models.Transaction) (int, error) {
			s.Require().Len(txns, 2)
			s.Equal("1", txns[0].TransactionID)
			s.True(txns[0].Amount.Equal(decimal.NewFromInt(100)))
			s.Equal("2", txns[1].TransactionID)
			s.Equal(models.TransactionTypeCredit, txns[1].TransactionType)
			s.Equal("50.25", txns[1].Amount.String())
			return len(txns), nil
		})

	rec := s.do(http.MethodPost, "/api/v1/transactions", body)

	s.Equal(http.StatusCreated, rec.Code)
	var response struct {
		Data dto.ImportTransactionsResponse `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(2, response.Data.Imported)
}

func (s *TransactionHandlerTestSuite) TestImportTransactions_ValidationErrors() {
	testCases := []struct {
		name   string
		body   string
		detail string
	}{
		{"empty batch", `{"transactions":[]}`, "transactions: must contain at least 1 items"},
		{"missing amount", `{"transactions":[{"transaction_id":"1","transaction_date":"2019-01-01","transaction_type":"debit"}]}`, "transactions[0].transaction_amount: is required"},
		{"bad type", `{"transactions":[{"transaction_id":"1","transaction_date":"2019-01-01","transaction_amount":1,"transaction_type":"refund"}]}`, "transactions[0].transaction_type: must be a valid transaction type (debit, credit)"},
		{"bad date", `{"transactions":[{"transaction_id":"1","transaction_date":"01/02/2019","transaction_amount":1,"transaction_type":"debit"}]}`, "transactions[0].transaction_date: must be a valid date (YYYY-MM-DD)"},
		{"fractional cents", `{"transactions":[{"transaction_id":"1","transaction_date":"2019-01-01","transaction_amount":10.005,"transaction_type":"debit"}]}`, "transactions[0].transaction_amount: must have at most 2 decimal places and 13 integer digits"},
		{"amount too large", `{"transactions":[{"transaction_id":"1","transaction_date":"2019-01-01","transaction_amount":"12345678901234567.89","transaction_type":"debit"}]}`, "transactions[0].transaction_amount: must have at most 2 decimal places and 13 integer digits"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			rec := s.do(http.MethodPost, "/api/v1/transactions", tc.body)

			s.Equal(http.StatusBadRequest, rec.Code)
			var response ErrorResponse
			s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
			s.Equal("VALIDATION_001", response.Error.Code)
			s.Contains(response.Error.Details, tc.detail)
		})
	}
}

func (s *TransactionHandlerTestSuite) TestImportTransactions_MalformedBody() {
	rec := s.do(http.MethodPost, "/api/v1/transactions", `{"transactions":`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("VALIDATION_001", s.errorCode(rec))
}

func (s *TransactionHandlerTestSuite) TestImportTransactions_RepositoryFailure() {
	s.mockService.EXPECT().Import(gomock.Any(), gomock.Any()).Return(0, fmt.Errorf("disk full"))

	body := `{"transactions":[{"transaction_id":"1","transaction_date":"2019-01-01","transaction_amount":1,"transaction_type":"debit"}]}`
	rec := s.do(http.MethodPost, "/api/v1/transactions", body)

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal("SYSTEM_001", s.errorCode(rec))
	s.NotContains(rec.Body.String(), "disk full")
}

func (s *TransactionHandlerTestSuite) TestImportTransactions_InvalidAmountFromService() {
	s.mockService.EXPECT().Import(gomock.Any(), gomock.Any()).
		Return(0, fmt.Errorf("transaction 1: %w", models.ErrInvalidAmount))

	body := `{"transactions":[{"transaction_id":"1","transaction_date":"2019-01-01","transaction_amount":1,"transaction_type":"debit"}]}`
	rec := s.do(http.MethodPost, "/api/v1/transactions", body)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("TRANSACTION_002", s.errorCode(rec))
}

func (s *TransactionHandlerTestSuite) TestStoreUnavailable() {
	s.mockService.EXPECT().Average(gomock.Any()).Return(decimal.Zero, services.ErrStoreUnavailable)

	rec := s.do(http.MethodGet, "/api/v1/transactions/average", "")

	s.Equal(http.StatusServiceUnavailable, rec.Code)
	s.Equal("SYSTEM_003", s.errorCode(rec))
}

// List

func (s *TransactionHandlerTestSuite) TestListTransactions_NoFilters() {
	s.mockService.EXPECT().
		List(gomock.Any(), models.TransactionFilters{}).
		Return(sampleTransactions(), nil)

	rec := s.do(http.MethodGet, "/api/v1/transactions", "")

	s.Equal(http.StatusOK, rec.Code)
	var response struct {
		Transactions []map[string]interface{} `json:"transactions"`
		Count        int                      `json:"count"`
		Suggestions  []string                 `json:"suggestions"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(2, response.Count)
	s.Equal("1", response.Transactions[0]["transaction_id"])
	s.Equal("Online Store", response.Transactions[1]["merchant_name"])
	s.Nil(response.Suggestions)
}

func (s *TransactionHandlerTestSuite) TestListTransactions_AllFilters() {
	minAmount := decimal.RequireFromString("10")
	maxAmount := decimal.RequireFromString("99.50")

	s.mockService.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, f models.TransactionFilters) ([]models.Transaction, error) {
			s.Equal(models.TransactionTypeDebit, f.Type)
			s.Equal("Supermarket", f.MerchantName)
			s.True(f.MinAmount.Equal(minAmount))
			s.True(f.MaxAmount.Equal(maxAmount))
			s.Equal("2019-01-01", f.StartDate)
			s.Equal("2019-01-31", f.EndDate)
			s.Equal("2019-02-01", f.BeforeDate)
			return sampleTransactions()[:1], nil
		})

	rec := s.do(http.MethodGet, "/api/v1/transactions?type=Debit&merchant=Supermarket&min_amount=10&max_amount=99.50&start_date=2019-01-01&end_date=2019-01-31&before=2019-02-01", "")

	s.Equal(http.StatusOK, rec.Code)
}

func (s *TransactionHandlerTestSuite) TestListTransactions_EmptyMerchantResultSuggests() {
	s.mockService.EXPECT().List(gomock.Any(), gomock.Any()).Return([]models.Transaction{}, nil)
	s.mockService.EXPECT().SuggestMerchants(gomock.Any(), "Supermarkt").Return([]string{"Supermarket"}, nil)

	rec := s.do(http.MethodGet, "/api/v1/transactions?merchant=Supermarkt", "")

	s.Equal(http.StatusOK, rec.Code)
	var response dto.ListTransactionsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(0, response.Count)
	s.Equal([]string{"Supermarket"}, response.Suggestions)
}

func (s *TransactionHandlerTestSuite) TestListTransactions_MerchantPassedVerbatim() {
	s.mockService.EXPECT().
		List(gomock.Any(), models.TransactionFilters{MerchantName: " Supermarket "}).
		Return(sampleTransactions()[:1], nil)

	rec := s.do(http.MethodGet, "/api/v1/transactions?merchant=%20Supermarket%20", "")

	s.Equal(http.StatusOK, rec.Code)
}

func (s *TransactionHandlerTestSuite) TestListTransactions_EmptyMerchantIsAbsent() {
	s.mockService.EXPECT().
		List(gomock.Any(), models.TransactionFilters{}).
		Return(sampleTransactions(), nil)

	rec := s.do(http.MethodGet, "/api/v1/transactions?merchant=", "")

	s.Equal(http.StatusOK, rec.Code)
}

func (s *TransactionHandlerTestSuite) TestListTransactions_InvalidParams() {
	testCases := []struct {
		name   string
		query  string
		status int
		code   string
	}{
		{"invalid type", "type=refund", http.StatusBadRequest, "VALIDATION_008"},
		{"invalid start date", "start_date=2019-13-01&end_date=2019-12-31", http.StatusBadRequest, "VALIDATION_007"},
		{"invalid before date", "before=yesterday", http.StatusBadRequest, "VALIDATION_007"},
		{"invalid amount", "min_amount=ten", http.StatusBadRequest, "VALIDATION_003"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			rec := s.do(http.MethodGet, "/api/v1/transactions?"+tc.query, "")

			s.Equal(tc.status, rec.Code)
			s.Equal(tc.code, s.errorCode(rec))
		})
	}
}

func (s *TransactionHandlerTestSuite) TestListTransactions_ServiceErrors() {
	testCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"incomplete range", services.ErrIncompleteDateRange, http.StatusBadRequest, "VALIDATION_002"},
		{"inverted amounts", services.ErrInvalidAmountRange, http.StatusBadRequest, "VALIDATION_004"},
		{"stored date invalid", fmt.Errorf("transaction 9: %w", query.ErrInvalidDate), http.StatusBadRequest, "VALIDATION_007"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockService.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, tc.err)

			rec := s.do(http.MethodGet, "/api/v1/transactions", "")

			s.Equal(tc.status, rec.Code)
			s.Equal(tc.code, s.errorCode(rec))
		})
	}
}

// Find by id

func (s *TransactionHandlerTestSuite) TestGetTransaction_Found() {
	txn := sampleTransactions()[1]
	s.mockService.EXPECT().FindByID(gomock.Any(), "2").Return(&txn, nil)

	rec := s.do(http.MethodGet, "/api/v1/transactions/by-id/2", "")

	s.Equal(http.StatusOK, rec.Code)
	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("2", response["transaction_id"])
	s.Equal("credit", response["transaction_type"])
}

func (s *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	s.mockService.EXPECT().FindByID(gomock.Any(), "404").Return(nil, services.ErrTransactionNotFound)

	rec := s.do(http.MethodGet, "/api/v1/transactions/by-id/404", "")

	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("TRANSACTION_001", s.errorCode(rec))
}

func (s *TransactionHandlerTestSuite) TestGetTransaction_IDsMatchingAggregateRoutes() {
	for _, id := range []string{"summary", "types", "totals", "average", "descriptions", "busiest-month", "dominant-type"} {
		s.Run(id, func() {
			txn := sampleTransactions()[0]
			txn.TransactionID = id
			s.mockService.EXPECT().FindByID(gomock.Any(), id).Return(&txn, nil)

			rec := s.do(http.MethodGet, "/api/v1/transactions/by-id/"+id, "")

			s.Equal(http.StatusOK, rec.Code)
			var response map[string]interface{}
			s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
			s.Equal(id, response["transaction_id"])
		})
	}
}

// Aggregates

func (s *TransactionHandlerTestSuite) TestGetDescriptions() {
	s.mockService.EXPECT().Descriptions(gomock.Any()).Return([]string{"Grocery shopping", "Product return"}, nil)

	rec := s.do(http.MethodGet, "/api/v1/transactions/descriptions", "")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"descriptions":["Grocery shopping","Product return"]}`, rec.Body.String())
}

func (s *TransactionHandlerTestSuite) TestGetUniqueTypes() {
	s.mockService.EXPECT().UniqueTypes(gomock.Any()).Return([]models.TransactionType{models.TransactionTypeDebit, models.TransactionTypeCredit}, nil)

	rec := s.do(http.MethodGet, "/api/v1/transactions/types", "")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"types":["debit","credit"]}`, rec.Body.String())
}

func (s *TransactionHandlerTestSuite) TestGetTotals_WithDateFilter() {
	s.mockService.EXPECT().
		Totals(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, f models.DateFilter) (*services.Totals, error) {
			s.Require().NotNil(f.Year)
			s.Require().NotNil(f.Month)
			s.Nil(f.Day)
			s.Equal(2019, *f.Year)
			s.Equal(1, *f.Month)
			return &services.Totals{Total: decimal.NewFromInt(175), DebitTotal: decimal.NewFromInt(175), Count: 2}, nil
		})

	rec := s.do(http.MethodGet, "/api/v1/transactions/totals?year=2019&month=1", "")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"total_amount":"175","total_debit_amount":"175","transaction_count":2}`, rec.Body.String())
}

func (s *TransactionHandlerTestSuite) TestGetTotals_NoFilter() {
	s.mockService.EXPECT().
		Totals(gomock.Any(), models.DateFilter{}).
		Return(&services.Totals{Total: decimal.NewFromInt(225), DebitTotal: decimal.NewFromInt(175), Count: 3}, nil)

	rec := s.do(http.MethodGet, "/api/v1/transactions/totals", "")

	s.Equal(http.StatusOK, rec.Code)
}

func (s *TransactionHandlerTestSuite) TestGetTotals_InvalidParams() {
	testCases := []struct {
		name  string
		query string
		code  string
	}{
		{"month out of range", "month=13", "VALIDATION_004"},
		{"day out of range", "day=0", "VALIDATION_004"},
		{"year not a number", "year=twenty", "VALIDATION_003"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			rec := s.do(http.MethodGet, "/api/v1/transactions/totals?"+tc.query, "")

			s.Equal(http.StatusBadRequest, rec.Code)
			s.Equal(tc.code, s.errorCode(rec))
		})
	}
}

func (s *TransactionHandlerTestSuite) TestGetAverage() {
	s.mockService.EXPECT().Average(gomock.Any()).Return(decimal.NewFromInt(75), nil)

	rec := s.do(http.MethodGet, "/api/v1/transactions/average", "")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"average_amount":"75"}`, rec.Body.String())
}

func (s *TransactionHandlerTestSuite) TestGetDominantType() {
	s.mockService.EXPECT().DominantType(gomock.Any()).Return(query.DominanceEqual, nil)

	rec := s.do(http.MethodGet, "/api/v1/transactions/dominant-type", "")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"dominant_type":"equal"}`, rec.Body.String())
}

func (s *TransactionHandlerTestSuite) TestGetBusiestMonth() {
	s.Run("all transactions", func() {
		s.mockService.EXPECT().BusiestMonth(gomock.Any(), models.TransactionType("")).Return("2019-01", nil)

		rec := s.do(http.MethodGet, "/api/v1/transactions/busiest-month", "")

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"month":"2019-01"}`, rec.Body.String())
	})

	s.Run("debit only", func() {
		s.mockService.EXPECT().BusiestMonth(gomock.Any(), models.TransactionTypeDebit).Return("2019-01", nil)

		rec := s.do(http.MethodGet, "/api/v1/transactions/busiest-month?type=debit", "")

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"month":"2019-01","transaction_type":"debit"}`, rec.Body.String())
	})
}

func (s *TransactionHandlerTestSuite) TestGetBusiestMonth_Errors() {
	s.Run("empty store", func() {
		s.mockService.EXPECT().BusiestMonth(gomock.Any(), gomock.Any()).Return("", query.ErrEmptyInput)

		rec := s.do(http.MethodGet, "/api/v1/transactions/busiest-month", "")

		s.Equal(http.StatusUnprocessableEntity, rec.Code)
		s.Equal("QUERY_001", s.errorCode(rec))
	})

	s.Run("credit unsupported", func() {
		s.mockService.EXPECT().
			BusiestMonth(gomock.Any(), models.TransactionTypeCredit).
			Return("", fmt.Errorf("%w: %q", services.ErrUnsupportedType, "credit"))

		rec := s.do(http.MethodGet, "/api/v1/transactions/busiest-month?type=credit", "")

		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal("QUERY_002", s.errorCode(rec))
	})

	s.Run("unknown type", func() {
		rec := s.do(http.MethodGet, "/api/v1/transactions/busiest-month?type=refund", "")

		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal("VALIDATION_008", s.errorCode(rec))
	})
}

func (s *TransactionHandlerTestSuite) TestGetSummary() {
	summary := &query.Summary{
		Count:        2,
		TotalAmount:  decimal.NewFromInt(150),
		DominantType: query.DominanceEqual,
		BusiestMonth: "2019-01",
	}
	s.mockService.EXPECT().Summary(gomock.Any()).Return(summary, nil)

	rec := s.do(http.MethodGet, "/api/v1/transactions/summary", "")

	s.Equal(http.StatusOK, rec.Code)
	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(float64(2), response["count"])
	s.Equal("150", response["total_amount"])
	s.Equal("2019-01", response["busiest_month"])
}

func (s *TransactionHandlerTestSuite) TestTraceIDPropagatesToErrors() {
	s.mockService.EXPECT().FindByID(gomock.Any(), "x").Return(nil, services.ErrTransactionNotFound)

	s.echo.Pre(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(TraceIDContextKey, "trace-123")
			return next(c)
		}
	})

	rec := s.do(http.MethodGet, "/api/v1/transactions/by-id/x", "")

	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("trace-123", response.Error.TraceID)
}
