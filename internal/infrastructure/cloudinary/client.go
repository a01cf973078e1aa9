package cloudinary

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sanfelipe/obras-api/internal/application/ports"
	"github.com/sanfelipe/obras-api/pkg/config"
)

// Verificar en tiempo de compilación que Client implementa ImageUploader.
var _ ports.ImageUploader = (*Client)(nil)

const baseURL = "https://api.cloudinary.com/v1_1"

// Client adaptador que implementa ImageUploader usando la API REST de
// Cloudinary (upload firmado). Usa net/http; no requiere el SDK oficial.
type Client struct {
	cloudName  string
	apiKey     string
	apiSecret  string
	baseFolder string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient construye el adaptador. Si cfg.CloudName está vacío, las llamadas
// devuelven error descriptivo en lugar de panic.
func NewClient(cfg config.CloudinaryConfig) *Client {
	return &Client{
		cloudName:  cfg.CloudName,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		baseFolder: cfg.BaseFolder,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sube la imagen a la carpeta indicada (relativa a la carpeta base)
// y devuelve la URL segura y el public_id asignado.
func (c *Client) Upload(ctx context.Context, data []byte, filename, folder string) (*ports.UploadedImage, error) {
	if c.cloudName == "" {
		return nil, fmt.Errorf("cloudinary: CLOUDINARY_CLOUD_NAME no configurado")
	}

	fullFolder := c.baseFolder
	if folder != "" {
		fullFolder = path.Join(c.baseFolder, folder)
	}
	timestamp := strconv.FormatInt(c.now().Unix(), 10)

	params := map[string]string{
		"folder":    fullFolder,
		"timestamp": timestamp,
	}
	signature := c.sign(params)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: armar multipart: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("cloudinary: escribir archivo: %w", err)
	}
	_ = w.WriteField("api_key", c.apiKey)
	_ = w.WriteField("timestamp", timestamp)
	_ = w.WriteField("folder", fullFolder)
	_ = w.WriteField("signature", signature)
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("cloudinary: cerrar multipart: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload", baseURL, c.cloudName)
	out, err := c.do(ctx, endpoint, &buf, w.FormDataContentType())
	if err != nil {
		return nil, err
	}
	return &ports.UploadedImage{URL: out.SecureURL, PublicID: out.PublicID}, nil
}

// Delete elimina una imagen por su public_id. No es error que ya no exista.
func (c *Client) Delete(ctx context.Context, publicID string) error {
	if c.cloudName == "" {
		return fmt.Errorf("cloudinary: CLOUDINARY_CLOUD_NAME no configurado")
	}

	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	params := map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	}
	signature := c.sign(params)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("public_id", publicID)
	_ = w.WriteField("api_key", c.apiKey)
	_ = w.WriteField("timestamp", timestamp)
	_ = w.WriteField("signature", signature)
	if err := w.Close(); err != nil {
		return fmt.Errorf("cloudinary: cerrar multipart: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/image/destroy", baseURL, c.cloudName)
	_, err := c.do(ctx, endpoint, &buf, w.FormDataContentType())
	return err
}

func (c *Client) do(ctx context.Context, endpoint string, body io.Reader, contentType string) (*uploadResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("cloudinary: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("cloudinary: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("cloudinary: leer respuesta: %w", err)
	}

	var out uploadResponse
	if err := json.Unmarshal(rawBody, &out); err != nil {
		return nil, fmt.Errorf("cloudinary: deserializar respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != nil {
			return nil, fmt.Errorf("cloudinary: error (%d): %s", resp.StatusCode, out.Error.Message)
		}
		return nil, fmt.Errorf("cloudinary: HTTP %d: %s", resp.StatusCode, string(rawBody))
	}
	return &out, nil
}

// sign firma los parámetros según el esquema de Cloudinary: se concatenan
// ordenados alfabéticamente como query string, se añade el api_secret y se
// toma el SHA-1 en hexadecimal.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	toSign := strings.Join(pairs, "&") + c.apiSecret

	sum := sha1.Sum([]byte(toSign))
	return hex.EncodeToString(sum[:])
}
