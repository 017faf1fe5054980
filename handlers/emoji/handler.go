package emoji

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

type Emoji struct {
	Slug      string `json:"slug"`
	Character string `json:"character"`
}

var (
	emojiApiKeyEnv  = "EMOJI_API_KEY"
	emojiCatalogURL = "https://emoji-api.com/emojis"
)

func fetchEmojis() ([]Emoji, error) {
	apiKey := os.Getenv(emojiApiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("EMOJI_API_KEY is required in environment variables")
	}

	url := fmt.Sprintf("%s?access_key=%s", emojiCatalogURL, apiKey)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("emoji API error: status=%d", resp.StatusCode)
	}

	var emojis []Emoji
	if err := json.NewDecoder(resp.Body).Decode(&emojis); err != nil {
		return nil, fmt.Errorf("error decoding response: %v", err)
	}

	return emojis, nil
}

// @Summary Get the emoji catalog
// @Description Proxy the external emoji catalog so the API key stays server-side
// @Tags emoji
// @Produce json
// @Success 200 {array} emoji.Emoji
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /emoji [get]
func GetEmojis(c *gin.Context) {
	emojis, err := fetchEmojis()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving emojis: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, emojis)
}
