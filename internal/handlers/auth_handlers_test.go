package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/uservault/backend/internal/constants"
	"github.com/uservault/backend/internal/models"
	"github.com/uservault/backend/internal/utils"
)

// Mock AuthService implementing the interface methods required by AuthHandler
type MockAuthService struct {
	RegisterFunc func(ctx context.Context, reg *models.UserRegistration) (*models.User, error)
	LoginFunc    func(ctx context.Context, creds *models.UserCredentials, role models.Role) (*models.LoginResult, error)
	RefreshFunc  func(ctx context.Context, refreshToken string, role models.Role) (*models.TokenPair, error)
}

func (m *MockAuthService) Register(ctx context.Context, reg *models.UserRegistration) (*models.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, reg)
	}
	return &models.User{ID: 1, Name: reg.Name, Email: reg.Email, Phone: reg.Phone}, nil
}

func (m *MockAuthService) Login(ctx context.Context, creds *models.UserCredentials, role models.Role) (*models.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds, role)
	}
	return &models.LoginResult{
		User:   &models.User{ID: 1, Name: "Test User", Email: creds.Email},
		Tokens: models.TokenPair{AccessToken: "access_token", RefreshToken: "refresh_token"},
	}, nil
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string, role models.Role) (*models.TokenPair, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken, role)
	}
	return &models.TokenPair{AccessToken: "new_access_token", RefreshToken: "new_refresh_token"}, nil
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	return req
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return response
}

func TestRegister(t *testing.T) {
	testCases := []struct {
		name             string
		requestBody      map[string]interface{}
		mockSetup        func(*MockAuthService)
		expectedStatus   int
		validateResponse func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "Successful Registration",
			requestBody: map[string]interface{}{
				"name":     "Test User",
				"email":    "test@example.com",
				"phone":    "12345678",
				"password": "Password123",
			},
			mockSetup: func(mock *MockAuthService) {
				mock.RegisterFunc = func(ctx context.Context, reg *models.UserRegistration) (*models.User, error) {
					return &models.User{
						ID:        1,
						Name:      reg.Name,
						Email:     reg.Email,
						Phone:     reg.Phone,
						CreatedAt: time.Now(),
					}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				response := decodeResponse(t, rec)

				if success, _ := response["success"].(bool); !success {
					t.Error("Expected success=true in response")
				}
				data, ok := response["data"].(map[string]interface{})
				if !ok {
					t.Fatal("Expected data object in response")
				}
				user, ok := data["user"].(map[string]interface{})
				if !ok {
					t.Fatal("Expected user object in response data")
				}
				if id, _ := user["id"].(float64); id != 1 {
					t.Errorf("Expected user ID 1, got %v", id)
				}
				if email, _ := user["email"].(string); email != "test@example.com" {
					t.Errorf("Expected email 'test@example.com', got %s", email)
				}
			},
		},
		{
			name: "Missing Required Fields",
			requestBody: map[string]interface{}{
				"email": "test@example.com",
			},
			mockSetup:      func(mock *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			validateResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				response := decodeResponse(t, rec)
				if success, _ := response["success"].(bool); success {
					t.Error("Expected success=false in response")
				}
			},
		},
		{
			name: "Duplicate Email",
			requestBody: map[string]interface{}{
				"name":     "Test User",
				"email":    "taken@example.com",
				"phone":    "12345678",
				"password": "Password123",
			},
			mockSetup: func(mock *MockAuthService) {
				mock.RegisterFunc = func(ctx context.Context, reg *models.UserRegistration) (*models.User, error) {
					return nil, utils.NewDuplicateError("user", "email", reg.Email)
				}
			},
			expectedStatus: http.StatusConflict,
			validateResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				response := decodeResponse(t, rec)
				if success, _ := response["success"].(bool); success {
					t.Error("Expected success=false in response")
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := new(MockAuthService)
			tc.mockSetup(mockService)
			handler := NewAuthHandler(mockService)

			req := jsonRequest(t, http.MethodPost, "/api/users/register", tc.requestBody)
			rec := httptest.NewRecorder()

			handler.Register(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tc.expectedStatus, rec.Code, rec.Body.String())
			}
			if tc.validateResponse != nil {
				tc.validateResponse(t, rec)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	testCases := []struct {
		name             string
		role             models.Role
		requestBody      map[string]interface{}
		mockSetup        func(*MockAuthService)
		expectedStatus   int
		validateResponse func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "Successful User Login",
			role: models.RoleUser,
			requestBody: map[string]interface{}{
				"email":    "test@example.com",
				"password": "Password123",
			},
			mockSetup: func(mock *MockAuthService) {
				mock.LoginFunc = func(ctx context.Context, creds *models.UserCredentials, role models.Role) (*models.LoginResult, error) {
					if role != models.RoleUser {
						t.Errorf("Expected user role, got %v", role)
					}
					return &models.LoginResult{
						User:   &models.User{ID: 1, Name: "Test User", Email: creds.Email},
						Tokens: models.TokenPair{AccessToken: "access_token", RefreshToken: "refresh_token"},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				response := decodeResponse(t, rec)

				data, ok := response["data"].(map[string]interface{})
				if !ok {
					t.Fatal("Expected data object in response")
				}
				if token, _ := data["accessToken"].(string); token != "access_token" {
					t.Errorf("Expected accessToken 'access_token', got %v", token)
				}
				if token, _ := data["refreshToken"].(string); token != "refresh_token" {
					t.Errorf("Expected refreshToken 'refresh_token', got %v", token)
				}
				if _, ok := data["user"].(map[string]interface{}); !ok {
					t.Error("Expected user object in response data")
				}
			},
		},
		{
			name: "Invalid Credentials",
			role: models.RoleUser,
			requestBody: map[string]interface{}{
				"email":    "test@example.com",
				"password": "wrongpassword",
			},
			mockSetup: func(mock *MockAuthService) {
				mock.LoginFunc = func(ctx context.Context, creds *models.UserCredentials, role models.Role) (*models.LoginResult, error) {
					return nil, utils.NewInvalidCredentialsError()
				}
			},
			expectedStatus: http.StatusUnauthorized,
			validateResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				response := decodeResponse(t, rec)
				if message, _ := response["message"].(string); message != constants.MsgInvalidCredentials {
					t.Errorf("Expected message %q, got %q", constants.MsgInvalidCredentials, message)
				}
			},
		},
		{
			name: "Admin Login Passes Admin Role",
			role: models.RoleAdmin,
			requestBody: map[string]interface{}{
				"email":    "admin@example.com",
				"password": "Password123",
			},
			mockSetup: func(mock *MockAuthService) {
				mock.LoginFunc = func(ctx context.Context, creds *models.UserCredentials, role models.Role) (*models.LoginResult, error) {
					if role != models.RoleAdmin {
						t.Errorf("Expected admin role, got %v", role)
					}
					return &models.LoginResult{
						User:   &models.User{ID: 2, Name: "Admin", Email: creds.Email, IsAdmin: true},
						Tokens: models.TokenPair{AccessToken: "access_token", RefreshToken: "refresh_token"},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Missing Password",
			role: models.RoleUser,
			requestBody: map[string]interface{}{
				"email": "test@example.com",
			},
			mockSetup:      func(mock *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := new(MockAuthService)
			tc.mockSetup(mockService)
			handler := NewAuthHandler(mockService)

			req := jsonRequest(t, http.MethodPost, "/api/users/login", tc.requestBody)
			rec := httptest.NewRecorder()

			handler.Login(tc.role)(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tc.expectedStatus, rec.Code, rec.Body.String())
			}
			if tc.validateResponse != nil {
				tc.validateResponse(t, rec)
			}
		})
	}
}

func TestRefresh(t *testing.T) {
	testCases := []struct {
		name             string
		role             models.Role
		requestBody      map[string]interface{}
		mockSetup        func(*MockAuthService)
		expectedStatus   int
		validateResponse func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "Successful Refresh",
			role: models.RoleUser,
			requestBody: map[string]interface{}{
				"refreshToken": "valid_refresh_token",
			},
			mockSetup: func(mock *MockAuthService) {
				mock.RefreshFunc = func(ctx context.Context, refreshToken string, role models.Role) (*models.TokenPair, error) {
					if refreshToken != "valid_refresh_token" {
						t.Errorf("Expected refresh token to be forwarded, got %q", refreshToken)
					}
					return &models.TokenPair{AccessToken: "new_access_token", RefreshToken: "new_refresh_token"}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				response := decodeResponse(t, rec)

				data, ok := response["data"].(map[string]interface{})
				if !ok {
					t.Fatal("Expected data object in response")
				}
				if token, _ := data["accessToken"].(string); token != "new_access_token" {
					t.Errorf("Expected accessToken 'new_access_token', got %v", token)
				}
			},
		},
		{
			name: "Invalid Refresh Token",
			role: models.RoleUser,
			requestBody: map[string]interface{}{
				"refreshToken": "expired_token",
			},
			mockSetup: func(mock *MockAuthService) {
				mock.RefreshFunc = func(ctx context.Context, refreshToken string, role models.Role) (*models.TokenPair, error) {
					return nil, utils.NewInvalidRefreshTokenError()
				}
			},
			expectedStatus: http.StatusUnauthorized,
			validateResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				response := decodeResponse(t, rec)
				if message, _ := response["message"].(string); message != constants.MsgInvalidRefreshToken {
					t.Errorf("Expected message %q, got %q", constants.MsgInvalidRefreshToken, message)
				}
			},
		},
		{
			name:           "Missing Refresh Token",
			role:           models.RoleUser,
			requestBody:    map[string]interface{}{},
			mockSetup:      func(mock *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := new(MockAuthService)
			tc.mockSetup(mockService)
			handler := NewAuthHandler(mockService)

			req := jsonRequest(t, http.MethodPost, "/api/users/refresh-token", tc.requestBody)
			rec := httptest.NewRecorder()

			handler.Refresh(tc.role)(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tc.expectedStatus, rec.Code, rec.Body.String())
			}
			if tc.validateResponse != nil {
				tc.validateResponse(t, rec)
			}
		})
	}
}
