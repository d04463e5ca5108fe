package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

// SignatureTolerance bounds how far the signed ts may be from now.
const SignatureTolerance = 5 * time.Minute

var ErrInvalidSignature = errors.New("invalid_webhook_signature")

// SignatureManifest builds the string MercadoPago signs for a webhook:
// id:{data.id};request-id:{x-request-id};ts:{ts};
// Parts that are absent from the request are left out.
func SignatureManifest(dataID, requestID, ts string) string {
	var b strings.Builder
	if dataID != "" {
		b.WriteString("id:" + strings.ToLower(dataID) + ";")
	}
	if requestID != "" {
		b.WriteString("request-id:" + requestID + ";")
	}
	if ts != "" {
		b.WriteString("ts:" + ts + ";")
	}
	return b.String()
}

// SignManifest returns the hex HMAC-SHA256 of manifest.
func SignManifest(secret, manifest string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyWebhookSignature checks an x-signature header of the form
// "ts=<unix>,v1=<hex hmac>" and rejects a ts outside SignatureTolerance.
func VerifyWebhookSignature(secret, header, requestID, dataID string, now time.Time) error {
	var ts, v1 string
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(k) {
		case "ts":
			ts = strings.TrimSpace(v)
		case "v1":
			v1 = strings.TrimSpace(v)
		}
	}
	if ts == "" || v1 == "" {
		return ErrInvalidSignature
	}

	signedAt, err := parseSignatureTime(ts)
	if err != nil {
		return ErrInvalidSignature
	}
	if age := now.Sub(signedAt); age > SignatureTolerance || age < -SignatureTolerance {
		return ErrInvalidSignature
	}

	expected := SignManifest(secret, SignatureManifest(dataID, requestID, ts))
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(v1))) {
		return ErrInvalidSignature
	}
	return nil
}

// ts is unix seconds; millisecond values are accepted too.
func parseSignatureTime(ts string) (time.Time, error) {
	n, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	if n > 1e12 {
		return time.UnixMilli(n), nil
	}
	return time.Unix(n, 0), nil
}
