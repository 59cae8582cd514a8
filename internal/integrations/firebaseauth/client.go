package firebaseauth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/errorutils"
	"github.com/sony/gobreaker/v2"
	"google.golang.org/api/option"

	"github.com/vgcman16/CleanMate/internal/domain"
	"github.com/vgcman16/CleanMate/pkg/circuitbreaker"
)

// DefaultBaseURL Identity Toolkit REST API
const DefaultBaseURL = "https://identitytoolkit.googleapis.com/v1"

// Config параметры подключения к Firebase
type Config struct {
	ProjectID       string
	CredentialsFile string
	WebAPIKey       string
	Timeout         time.Duration
}

// Client провайдер аутентификации.
// Регистрация, выход и проверка токенов идут через Admin SDK,
// вход по паролю и сброс пароля через REST API (Admin SDK их не поддерживает)
type Client struct {
	admin      AdminClient
	httpClient *http.Client
	baseURL    string
	apiKey     string
	breaker    *gobreaker.CircuitBreaker[[]byte]
	now        func() time.Time
	metrics    Metrics
	log        Logger
}

// NewClient инициализирует Firebase app и создает клиента
func NewClient(ctx context.Context, cfg Config, log Logger) (*Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInit, err)
	}

	admin, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: auth client: %v", ErrInit, err)
	}

	return NewClientWithAdmin(admin, DefaultBaseURL, cfg.WebAPIKey, cfg.Timeout, log), nil
}

// NewClientWithAdmin создает клиента с готовым Admin клиентом и адресом REST API
func NewClientWithAdmin(admin AdminClient, baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		admin:      admin,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		breaker: circuitbreaker.New[[]byte]("firebase-auth", circuitbreaker.Options{
			// Ошибки пользователя (неверный пароль и т.п.) не размыкают предохранитель
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, domain.ErrAuth)
			},
		}, log),
		now: time.Now,
		log: log,
	}
}

// WithMetrics включает учет отказов провайдера аутентификации
func (c *Client) WithMetrics(m Metrics) *Client {
	c.metrics = m
	return c
}

// SignUp создает пользователя и возвращает его uid
func (c *Client) SignUp(ctx context.Context, email, password, displayName, phone string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)
	if phone != "" {
		params = params.PhoneNumber(phone)
	}

	user, err := c.admin.CreateUser(ctx, params)
	if err != nil {
		switch {
		case auth.IsEmailAlreadyExists(err):
			return "", ErrEmailAlreadyInUse
		case auth.IsPhoneNumberAlreadyExists(err):
			return "", fmt.Errorf("%w: An account with this phone number already exists.", domain.ErrAuth)
		}
		c.log.Error("FirebaseAuth.SignUp: create user failed email=%s: %v", email, err)
		c.countFailure("create_user")
		return "", fmt.Errorf("%w: create user: %v", ErrUnavailable, err)
	}

	c.log.Info("FirebaseAuth.SignUp: user created uid=%s", user.UID)
	return user.UID, nil
}

// SignIn входит по email и паролю
func (c *Client) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	body, err := c.post(ctx, "accounts:signInWithPassword", signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return nil, err
	}

	var resp signInResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode sign in response: %v", ErrInvalidResponse, err)
	}
	if resp.LocalID == "" || resp.IDToken == "" {
		return nil, fmt.Errorf("%w: sign in response without token", ErrInvalidResponse)
	}

	expiresIn, err := strconv.Atoi(resp.ExpiresIn)
	if err != nil {
		expiresIn = 3600
	}

	return &domain.Session{
		UserID:       resp.LocalID,
		Email:        resp.Email,
		IDToken:      resp.IDToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    c.now().Add(time.Duration(expiresIn) * time.Second),
	}, nil
}

// ResetPassword отправляет письмо для сброса пароля
func (c *Client) ResetPassword(ctx context.Context, email string) error {
	_, err := c.post(ctx, "accounts:sendOobCode", sendOobCodeRequest{
		RequestType: "PASSWORD_RESET",
		Email:       email,
	})
	return err
}

// SignOut отзывает refresh токены пользователя
func (c *Client) SignOut(ctx context.Context, uid string) error {
	if err := c.admin.RevokeRefreshTokens(ctx, uid); err != nil {
		if auth.IsUserNotFound(err) {
			return ErrUserNotFound
		}
		c.countFailure("revoke_tokens")
		return fmt.Errorf("%w: revoke tokens: %v", ErrUnavailable, err)
	}
	return nil
}

// VerifyIDToken проверяет ID токен и возвращает uid пользователя.
// Токен, отозванный через SignOut, отклоняется
func (c *Client) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	token, err := c.admin.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		if isVerifyUnavailable(err) {
			c.countFailure("verify_token")
			return "", fmt.Errorf("%w: verify token: %v", ErrUnavailable, err)
		}
		return "", fmt.Errorf("%w (%v)", ErrInvalidToken, err)
	}
	return token.UID, nil
}

// isVerifyUnavailable отделяет отказ провайдера (ключи, сеть, таймаут) от плохого токена
func isVerifyUnavailable(err error) bool {
	if auth.IsIDTokenRevoked(err) || auth.IsIDTokenInvalid(err) || auth.IsUserDisabled(err) {
		return false
	}
	if auth.IsCertificateFetchFailed(err) ||
		errorutils.IsUnavailable(err) ||
		errorutils.IsDeadlineExceeded(err) ||
		errorutils.IsInternal(err) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// post выполняет запрос к REST API через предохранитель
func (c *Client) post(ctx context.Context, method string, payload interface{}) ([]byte, error) {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.doPost(ctx, method, payload)
	})
	if err != nil && !errors.Is(err, domain.ErrAuth) {
		c.countFailure(method)
	}
	return body, err
}

func (c *Client) countFailure(op string) {
	if c.metrics != nil {
		c.metrics.IncExternalCallError("firebase_auth", op)
	}
}

func (c *Client) doPost(ctx context.Context, method string, payload interface{}) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrInvalidResponse, err)
	}

	url := fmt.Sprintf("%s/%s?key=%s", c.baseURL, method, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: %s: status %d", ErrUnavailable, method, resp.StatusCode)
	}

	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return nil, fmt.Errorf("%w: %s: status %d: %s", ErrInvalidResponse, method, resp.StatusCode, string(body))
	}

	return nil, mapRESTError(errResp.Error.Message)
}

// mapRESTError переводит код ошибки REST API в ошибку аутентификации.
// Сообщение может иметь вид "WEAK_PASSWORD : Password should be at least 6 characters"
func mapRESTError(message string) error {
	code := strings.TrimSpace(strings.SplitN(message, ":", 2)[0])
	if err, ok := restErrors[code]; ok {
		return err
	}
	return fmt.Errorf("%w: %s", domain.ErrAuth, code)
}
