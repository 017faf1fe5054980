package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"regexp"
	"strings"

	"finster-backend/db"
	"finster-backend/middleware"
	"finster-backend/models"
	"finster-backend/repositories"
	"finster-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

const (
	stateCookieName = "oauth_state"
	userInfoURL     = "https://www.googleapis.com/oauth2/v2/userinfo"
	sessionHours    = 72
)

var whitespaceRegexp = regexp.MustCompile(`\s`)

func oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_CALLBACK_URL"),
		Scopes:       []string{"openid"},
		Endpoint:     google.Endpoint,
	}
}

// hashGoogleID réduit le sujet OAuth à une empreinte stable; on ne stocke
// jamais l'identifiant Google en clair
func hashGoogleID(googleID string) string {
	sum := sha256.Sum256([]byte(googleID))
	return hex.EncodeToString(sum[:])
}

// @Summary Start the Google login flow
// @Description Redirect the browser to the Google consent screen
// @Tags auth
// @Success 307 "redirect to Google"
// @Router /auth/google [get]
func GoogleLogin(c *gin.Context) {
	state := uuid.NewString()
	c.SetCookie(stateCookieName, state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, oauthConfig().AuthCodeURL(state))
}

// @Summary Google OAuth callback
// @Description Exchange the authorization code. A known Google subject gets a session token, an unknown one gets a short-lived registration token
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{} "token or registrationToken"
// @Failure 401 {object} map[string]string "error: invalid state"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /auth/google/callback [get]
func GoogleCallback(c *gin.Context) {
	// Le state posé au départ du flow doit revenir intact
	stateCookie, err := c.Cookie(stateCookieName)
	if err != nil || stateCookie == "" || stateCookie != c.Query("state") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid OAuth state"})
		return
	}
	c.SetCookie(stateCookieName, "", -1, "/", "", false, true)

	config := oauthConfig()
	token, err := config.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		utils.LogError(err, "Error exchanging the OAuth code")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error exchanging the authorization code"})
		return
	}

	googleID, err := fetchGoogleSubject(config, c, token)
	if err != nil {
		utils.LogError(err, "Error fetching the Google profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching the Google profile"})
		return
	}

	hashedGoogleID := hashGoogleID(googleID)

	user, err := repositories.NewUserRepository(db.DB).FindByGoogleID(hashedGoogleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Sujet inconnu: il doit d'abord choisir un nom d'utilisateur
			registrationToken, err := utils.GenerateRegistrationJWT(hashedGoogleID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating registration token"})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"registrationRequired": true,
				"registrationToken":    registrationToken,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error looking up the user"})
		return
	}

	sessionToken, err := utils.GenerateJWT(*user, sessionHours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating session token"})
		return
	}

	c.SetCookie(middleware.SessionCookieName, sessionToken, sessionHours*3600, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"token": sessionToken,
		"user":  user,
	})
}

func fetchGoogleSubject(config *oauth2.Config, c *gin.Context, token *oauth2.Token) (string, error) {
	resp, err := config.Client(c.Request.Context(), token).Get(userInfoURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var profile struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return "", err
	}
	if profile.ID == "" {
		return "", errors.New("empty Google subject")
	}
	return profile.ID, nil
}

// @Summary Register a username
// @Description Create the account bound to the Google subject carried by the registration token
// @Tags auth
// @Accept json
// @Produce json
// @Param user body models.UserRegister true "Chosen username"
// @Success 201 {object} map[string]interface{} "token and user"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Invalid registration token"
// @Failure 409 {object} map[string]string "error: Username already exists"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /register [post]
func Register(c *gin.Context) {
	hashedGoogleID, ok := registrationSubject(c)
	if !ok {
		return
	}

	var input models.UserRegister
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if whitespaceRegexp.MatchString(input.UserName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username cannot contain whitespace"})
		return
	}

	users := repositories.NewUserRepository(db.DB)

	// Le nom d'utilisateur doit être libre
	if _, err := users.FindByUsername(input.UserName); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error when checking the username existence"})
		return
	}

	// Un sujet Google déjà enregistré ne peut pas créer un second compte
	if _, err := users.FindByGoogleID(hashedGoogleID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "This Google account is already registered"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error when checking the account existence"})
		return
	}

	user := models.User{
		UserName:       input.UserName,
		HashedGoogleID: hashedGoogleID,
	}
	if err := users.Create(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user: " + err.Error()})
		return
	}

	sessionToken, err := utils.GenerateJWT(user, sessionHours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating session token"})
		return
	}

	c.SetCookie(middleware.SessionCookieName, sessionToken, sessionHours*3600, "/", "", false, true)
	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"token":   sessionToken,
		"user":    user,
	})
}

// registrationSubject valide le jeton d'inscription porté par la requête et
// en extrait l'empreinte du sujet Google
func registrationSubject(c *gin.Context) (string, bool) {
	authHeader := strings.Trim(c.GetHeader("Authorization"), "\"' ")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
		return "", false
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

	claims, err := utils.DecodeJWT(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
		return "", false
	}

	if registration, exists := claims["registration"]; !exists || registration != true {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "A registration token is required"})
		return "", false
	}

	hashedGoogleID, _ := claims["hashed_google_id"].(string)
	if hashedGoogleID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Google subject not found in token"})
		return "", false
	}

	return hashedGoogleID, true
}

// @Summary Logout
// @Description Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "message: Logged out"
// @Router /logout [get]
func Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
