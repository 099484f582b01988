package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePincode(t *testing.T) {
	svc := NewPincodeService(newPincodeStub(t).URL)

	result, err := svc.Resolve(context.Background(), "110001")
	require.NoError(t, err)
	assert.Equal(t, "110001", result.Pincode)
	assert.Equal(t, "Central Delhi", result.City)
	assert.Equal(t, "Delhi", result.State)
}

func TestResolveTrimsInput(t *testing.T) {
	svc := NewPincodeService(newPincodeStub(t).URL)

	result, err := svc.Resolve(context.Background(), " 110001 ")
	require.NoError(t, err)
	assert.Equal(t, "110001", result.Pincode)
}

func TestResolveRejectsMalformedPincode(t *testing.T) {
	svc := NewPincodeService("http://127.0.0.1:0")

	for _, pincode := range []string{"", "12345", "1234567", "11000a", "pin"} {
		_, err := svc.Resolve(context.Background(), pincode)
		assert.ErrorIs(t, err, ErrInvalidPincodeFormat, "pincode %q", pincode)
	}
}

func TestResolveUpstreamErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewPincodeService(srv.URL).Resolve(context.Background(), "110001")
	assert.ErrorIs(t, err, ErrPincodeUnresolved)
}

func TestResolveUpstreamNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"Status":"Error","PostOffice":null}]`)
	}))
	defer srv.Close()

	_, err := NewPincodeService(srv.URL).Resolve(context.Background(), "110001")
	assert.ErrorIs(t, err, ErrPincodeUnresolved)
}

func TestResolveUnreachableUpstream(t *testing.T) {
	_, err := NewPincodeService("http://127.0.0.1:1").Resolve(context.Background(), "110001")
	assert.ErrorIs(t, err, ErrPincodeUnresolved)
}

func TestResolveCityFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"Status":"Success","PostOffice":[{"Name":"Some Office","Block":"","District":"","State":"Kerala"}]}]`)
	}))
	defer srv.Close()

	result, err := NewPincodeService(srv.URL).Resolve(context.Background(), "682001")
	require.NoError(t, err)
	assert.Equal(t, "Some Office", result.City)
	assert.Equal(t, "Kerala", result.State)
}
