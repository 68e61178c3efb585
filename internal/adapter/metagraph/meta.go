package metagraph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://graph.facebook.com/v18.0"

// PublishResult — результат публикации на одной платформе
type PublishResult struct {
	Success      bool
	PostID       string
	ErrorMessage string
}

// Adapter публикует посты через Meta Graph API (Facebook и Instagram).
// Instagram принимает только посты с публичной ссылкой на картинку.
type Adapter struct {
	httpClient         *http.Client
	baseURL            string
	accessToken        string
	facebookPageID     string
	instagramAccountID string
	logger             *zap.Logger
}

func New(accessToken, facebookPageID, instagramAccountID string, logger *zap.Logger) *Adapter {
	return &Adapter{
		httpClient:         &http.Client{Timeout: 30 * time.Second},
		baseURL:            defaultBaseURL,
		accessToken:        accessToken,
		facebookPageID:     facebookPageID,
		instagramAccountID: instagramAccountID,
		logger:             logger,
	}
}

// graphResponse — ответ Graph API: либо id, либо структура ошибки
type graphResponse struct {
	ID    string `json:"id"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// PublishToFacebook публикует пост на страницу Facebook.
// С картинкой — фото-пост с подписью, без — текстовый пост.
func (a *Adapter) PublishToFacebook(ctx context.Context, content, imageURL string) *PublishResult {
	var endpoint string
	form := url.Values{"access_token": {a.accessToken}}

	if strings.TrimSpace(imageURL) != "" {
		endpoint = fmt.Sprintf("%s/%s/photos", a.baseURL, a.facebookPageID)
		form.Set("url", imageURL)
		form.Set("caption", content)
	} else {
		endpoint = fmt.Sprintf("%s/%s/feed", a.baseURL, a.facebookPageID)
		form.Set("message", content)
	}

	resp := a.postForm(ctx, endpoint, form)
	if resp.Success {
		a.logger.Info("Published to Facebook", zap.String("post_id", resp.PostID))
	} else {
		a.logger.Error("Facebook publish failed", zap.String("error", resp.ErrorMessage))
	}
	return resp
}

// PublishToInstagram публикует пост в Instagram в два шага:
// сначала создаётся медиа-контейнер, затем он публикуется по ID.
func (a *Adapter) PublishToInstagram(ctx context.Context, imageURL, caption string) *PublishResult {
	if strings.TrimSpace(imageURL) == "" {
		return &PublishResult{ErrorMessage: "Instagram posts require a valid image_url"}
	}

	// Шаг 1: медиа-контейнер
	containerForm := url.Values{
		"image_url":    {imageURL},
		"caption":      {caption},
		"access_token": {a.accessToken},
	}
	container := a.postForm(ctx, fmt.Sprintf("%s/%s/media", a.baseURL, a.instagramAccountID), containerForm)
	if !container.Success {
		a.logger.Error("Instagram container creation failed", zap.String("error", container.ErrorMessage))
		return container
	}

	// Шаг 2: публикация контейнера
	publishForm := url.Values{
		"creation_id":  {container.PostID},
		"access_token": {a.accessToken},
	}
	published := a.postForm(ctx, fmt.Sprintf("%s/%s/media_publish", a.baseURL, a.instagramAccountID), publishForm)
	if published.Success {
		a.logger.Info("Published to Instagram", zap.String("post_id", published.PostID))
	} else {
		a.logger.Error("Instagram publish failed", zap.String("error", published.ErrorMessage))
	}
	return published
}

// postForm выполняет form-POST и интерпретирует ответ Graph API.
// Успех — 2xx И наличие id в теле; иначе возвращается сообщение об ошибке.
func (a *Adapter) postForm(ctx context.Context, endpoint string, form url.Values) *PublishResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return &PublishResult{ErrorMessage: err.Error()}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return &PublishResult{ErrorMessage: err.Error()}
	}
	defer resp.Body.Close()

	var body graphResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return &PublishResult{ErrorMessage: fmt.Sprintf("decode response: %v", err)}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && body.ID != "" {
		return &PublishResult{Success: true, PostID: body.ID}
	}

	message := body.Error.Message
	if message == "" {
		message = fmt.Sprintf("unexpected response (status %d)", resp.StatusCode)
	}
	return &PublishResult{ErrorMessage: message}
}
