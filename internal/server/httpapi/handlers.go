package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dsmirnov/stockfolio/internal/common"
	"github.com/dsmirnov/stockfolio/internal/server/models"
)

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type identityResponse struct {
	ID       string `json:"id"`
	UserName string `json:"username"`
	Email    string `json:"email"`
}

type stockResponse struct {
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Exchange  string    `json:"exchange"`
	Currency  string    `json:"currency"`
	LastPrice float64   `json:"last_price"`
	UpdatedAt time.Time `json:"updated_at"`
}

type stockPageResponse struct {
	Stocks []stockResponse `json:"stocks"`
	Page   int             `json:"page"`
	Pages  int             `json:"pages"`
	Total  int64           `json:"total"`
}

type portfolioItemResponse struct {
	ID      string    `json:"id"`
	Symbol  string    `json:"symbol"`
	Shares  float64   `json:"shares"`
	AddedAt time.Time `json:"added_at"`
}

type portfolioAddRequest struct {
	Symbol string  `json:"symbol" validate:"required"`
	Shares float64 `json:"shares" validate:"required,gt=0"`
}

type filingResponse struct {
	ID         string    `json:"id"`
	Symbol     string    `json:"symbol"`
	FilingType string    `json:"filing_type"`
	Period     string    `json:"period"`
	FiledAt    time.Time `json:"filed_at"`
}

func toStockResponse(s *models.Stock) stockResponse {
	return stockResponse{
		Symbol:    s.Symbol,
		Name:      s.Name,
		Exchange:  s.Exchange,
		Currency:  s.Currency,
		LastPrice: s.LastPrice,
		UpdatedAt: s.UpdatedAt,
	}
}

func toPortfolioItemResponse(i *models.PortfolioItem) portfolioItemResponse {
	return portfolioItemResponse{
		ID:      i.ID,
		Symbol:  i.Symbol,
		Shares:  i.Shares,
		AddedAt: i.AddedAt,
	}
}

func toFilingResponse(f *models.Filing) filingResponse {
	return filingResponse{
		ID:         f.ID,
		Symbol:     f.Symbol,
		FilingType: f.FilingType,
		Period:     f.Period,
		FiledAt:    f.FiledAt,
	}
}

func (s *Server) decodeCredentials(r *http.Request) (*credentialsRequest, error) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, common.ErrorInvalidInput
	}
	if err := s.validate.Struct(&req); err != nil {
		return nil, common.ErrorInvalidInput
	}
	return &req, nil
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeCredentials(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "A valid email and a password of at least 8 characters are required")
		return
	}

	result, err := s.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			writeError(w, http.StatusBadRequest, "Email already exists")
		case errors.Is(err, common.ErrorInvalidInput):
			writeError(w, http.StatusBadRequest, "A valid email and a password of at least 8 characters are required")
		default:
			s.logger.Error(r.Context(), "registration failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, tokenBody{
		Message: "User registered successfully",
		Token:   result.Token,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeCredentials(r)
	if err != nil {
		// A malformed login attempt gets the same answer as a wrong
		// password, so the endpoint does not leak which part failed.
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	result, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, tokenBody{
		Message: "Login successful",
		Token:   result.Token,
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, identityResponse{
		ID:       identity.ID,
		UserName: identity.UserName,
		Email:    identity.Email,
	})
}

func (s *Server) handleStockList(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	query := r.URL.Query().Get("q")

	result, err := s.stocks.List(r.Context(), page, query)
	if err != nil {
		s.logger.Error(r.Context(), "stock listing failed", "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := stockPageResponse{
		Stocks: make([]stockResponse, 0, len(result.Stocks)),
		Page:   result.Page,
		Pages:  result.Pages,
		Total:  result.Total,
	}
	for _, st := range result.Stocks {
		resp.Stocks = append(resp.Stocks, toStockResponse(st))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStockGet(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	stock, err := s.stocks.Get(r.Context(), symbol)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, "Stock not found")
			return
		}
		s.logger.Error(r.Context(), "stock lookup failed", "symbol", symbol, "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toStockResponse(stock))
}

func (s *Server) handleFilingList(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	filings, err := s.filings.ListBySymbol(r.Context(), symbol)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, "Stock not found")
			return
		}
		s.logger.Error(r.Context(), "filing listing failed", "symbol", symbol, "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := struct {
		Filings []filingResponse `json:"filings"`
	}{Filings: make([]filingResponse, 0, len(filings))}
	for _, f := range filings {
		resp.Filings = append(resp.Filings, toFilingResponse(f))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFilingDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	url, err := s.filings.DocumentURL(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, "Filing not found")
			return
		}
		s.logger.Error(r.Context(), "filing document failed", "filing", id, "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		URL string `json:"url"`
	}{URL: url})
}

func (s *Server) handlePortfolioList(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	items, err := s.portfolios.List(r.Context(), identity.ID)
	if err != nil {
		s.logger.Error(r.Context(), "portfolio listing failed", "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := struct {
		Items []portfolioItemResponse `json:"items"`
	}{Items: make([]portfolioItemResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, toPortfolioItemResponse(item))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePortfolioAdd(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	var req portfolioAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "A symbol and a positive share count are required")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "A symbol and a positive share count are required")
		return
	}

	item, err := s.portfolios.Add(r.Context(), identity.ID, req.Symbol, req.Shares)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidInput) {
			writeMessage(w, http.StatusBadRequest, "Unknown symbol or invalid share count")
			return
		}
		s.logger.Error(r.Context(), "portfolio add failed", "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, toPortfolioItemResponse(item))
}

func (s *Server) handlePortfolioRemove(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	symbol := chi.URLParam(r, "symbol")

	if err := s.portfolios.Remove(r.Context(), identity.ID, symbol); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, "Holding not found")
			return
		}
		s.logger.Error(r.Context(), "portfolio remove failed", "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
