package ycmd

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
)

// hmacHeader carries the request and response signatures.
const hmacHeader = "X-Ycm-Hmac"

// hmacSum computes HMAC-SHA256 of data with the shared secret.
func hmacSum(secret, data []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(data)
	return mac.Sum(nil)
}

// requestHMAC computes the backend's request signature: the HMAC of the
// concatenated HMACs of method, path, and body. The backend rejects any
// request whose header does not match this value exactly.
func requestHMAC(secret []byte, method, path string, body []byte) []byte {
	joined := make([]byte, 0, 3*sha256.Size)
	joined = append(joined, hmacSum(secret, []byte(method))...)
	joined = append(joined, hmacSum(secret, []byte(path))...)
	joined = append(joined, hmacSum(secret, body)...)
	return hmacSum(secret, joined)
}

// requestHMACHeader returns the base64 header value for a request.
func requestHMACHeader(secret []byte, method, path string, body []byte) string {
	return base64.StdEncoding.EncodeToString(requestHMAC(secret, method, path, body))
}

// verifyResponseHMAC checks a response body against the backend's signature
// header (an HMAC over the body alone). Comparison is constant time.
func verifyResponseHMAC(secret []byte, body []byte, header string) bool {
	expected, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return false
	}
	actual := hmacSum(secret, body)
	return subtle.ConstantTimeCompare(expected, actual) == 1
}
