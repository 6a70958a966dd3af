// Package jwt signs and validates the bearer tokens that identify a player in a game
package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"upanddown-server/internal/config"
)

// Issuer issues the JWT
const Issuer = "upanddown-server"

// Audience is the intended JWT audience
const Audience = "upanddown"

// tokenLifetime is how long a player token is valid for
const tokenLifetime = time.Hour * 24 * 7

var publicKey *rsa.PublicKey
var privateKey *rsa.PrivateKey

// Claims are the claims of a player token
// The subject is the player ID.
type Claims struct {
	jwtgo.RegisteredClaims
	GameID string `json:"gameId"`
}

// Player is the player a token was issued to
type Player struct {
	GameID   string
	PlayerID string
}

// LoadKeys will load the public and private keys from the paths in the config
// this method should only be called once.
func LoadKeys() error {
	cfg := config.Instance().JWT
	return LoadKeysFromFiles(cfg.PublicKey, cfg.PrivateKey)
}

// LoadKeysFromFiles will load the public and private keys
func LoadKeysFromFiles(publicKeyPath, privateKeyPath string) error {
	pub, err := loadPublicKey(publicKeyPath)
	if err != nil {
		return err
	}

	priv, err := loadPrivateKey(privateKeyPath)
	if err != nil {
		return err
	}

	publicKey = pub
	privateKey = priv
	return nil
}

// Sign will sign a JWT for the player in the game
func Sign(gameID, playerID string) (string, error) {
	if privateKey == nil {
		panic("LoadKeys() not called")
	}

	now := time.Now()
	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, Claims{
		RegisteredClaims: jwtgo.RegisteredClaims{
			Audience:  jwtgo.ClaimStrings{Audience},
			ID:        uuid.New().String(),
			IssuedAt:  jwtgo.NewNumericDate(now),
			ExpiresAt: jwtgo.NewNumericDate(now.Add(tokenLifetime)),
			Issuer:    Issuer,
			Subject:   playerID,
		},
		GameID: gameID,
	})

	return token.SignedString(privateKey)
}

// ValidPlayer will validate a signed JWT and return the player it was issued to
func ValidPlayer(signedString string) (*Player, error) {
	if publicKey == nil {
		panic("LoadKeys() not called")
	}

	token, err := jwtgo.ParseWithClaims(signedString, &Claims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodRSA); !ok {
			return nil, errors.New("expected RS256 signing method")
		}

		return publicKey, nil
	})

	if err != nil {
		return nil, err
	}

	if token.Valid {
		if claims, ok := token.Claims.(*Claims); ok {
			if !containsAudience(claims.Audience, Audience) {
				return nil, errors.New("invalid audience")
			}

			if claims.Issuer != Issuer {
				return nil, errors.New("invalid issuer")
			}

			if claims.GameID == "" || claims.Subject == "" {
				return nil, errors.New("missing game or player")
			}

			return &Player{
				GameID:   claims.GameID,
				PlayerID: claims.Subject,
			}, nil
		}

		return nil, fmt.Errorf("expected jwt.Claims, got %T", token.Claims)
	}

	logrus.Warn("token claims were not valid. did not expect to reach this code")
	return nil, errors.New("claims were not valid")
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read public key: %w", err)
	}

	pem, err := jwtgo.ParseRSAPublicKeyFromPEM(b)
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	return pem, nil
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read private key: %w", err)
	}

	pem, err := jwtgo.ParseRSAPrivateKeyFromPEM(b)
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA private key: %w", err)
	}

	return pem, nil
}

func containsAudience(audiences jwtgo.ClaimStrings, target string) bool {
	for _, aud := range audiences {
		if aud == target {
			return true
		}
	}
	return false
}
