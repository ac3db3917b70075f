package services

import (
	"errors"
	"net"
	"testing"

	"github.com/BoulehmiHoussem/Logient/internal/config"

	"github.com/oschwald/geoip2-golang"
	"github.com/oschwald/maxminddb-golang"
	"github.com/stretchr/testify/assert"
)

type mockCountryReader struct {
	countryFunc func(ip net.IP) (*geoip2.Country, error)
}

func (m *mockCountryReader) Country(ip net.IP) (*geoip2.Country, error) { return m.countryFunc(ip) }
func (m *mockCountryReader) Metadata() maxminddb.Metadata              { return maxminddb.Metadata{} }
func (m *mockCountryReader) Close() error                              { return nil }

func countryRecord(name, iso string) *geoip2.Country {
	record := &geoip2.Country{}
	record.Country.IsoCode = iso
	if name != "" {
		record.Country.Names = map[string]string{"en": name}
	}
	return record
}

func TestGeoIPService_GetCountry(t *testing.T) {
	t.Run("Localhost", func(t *testing.T) {
		service := NewGeoIPService(config.Config{}, testLogger())
		assert.Equal(t, "Localhost", service.GetCountry("127.0.0.1"))
		assert.Equal(t, "Localhost", service.GetCountry("::1"))
	})

	t.Run("No reader loaded", func(t *testing.T) {
		service := NewGeoIPService(config.Config{}, testLogger())
		assert.Equal(t, "Unknown", service.GetCountry("203.0.113.9"))
	})

	t.Run("Invalid IP", func(t *testing.T) {
		service := NewGeoIPService(config.Config{}, testLogger())
		service.geoReader = &mockCountryReader{}
		assert.Equal(t, "Invalid IP", service.GetCountry("not-an-ip"))
	})

	t.Run("Lookup error", func(t *testing.T) {
		service := NewGeoIPService(config.Config{}, testLogger())
		service.geoReader = &mockCountryReader{
			countryFunc: func(ip net.IP) (*geoip2.Country, error) {
				return nil, errors.New("corrupt database")
			},
		}
		assert.Equal(t, "Error", service.GetCountry("203.0.113.9"))
	})

	t.Run("English name preferred", func(t *testing.T) {
		service := NewGeoIPService(config.Config{}, testLogger())
		service.geoReader = &mockCountryReader{
			countryFunc: func(ip net.IP) (*geoip2.Country, error) {
				return countryRecord("Canada", "CA"), nil
			},
		}
		assert.Equal(t, "Canada", service.GetCountry("203.0.113.9"))
	})

	t.Run("Falls back to ISO code", func(t *testing.T) {
		service := NewGeoIPService(config.Config{}, testLogger())
		service.geoReader = &mockCountryReader{
			countryFunc: func(ip net.IP) (*geoip2.Country, error) {
				return countryRecord("", "TN"), nil
			},
		}
		assert.Equal(t, "TN", service.GetCountry("203.0.113.9"))
	})

	t.Run("Empty record", func(t *testing.T) {
		service := NewGeoIPService(config.Config{}, testLogger())
		service.geoReader = &mockCountryReader{
			countryFunc: func(ip net.IP) (*geoip2.Country, error) {
				return &geoip2.Country{}, nil
			},
		}
		assert.Equal(t, "Unknown", service.GetCountry("203.0.113.9"))
	})
}

func TestGeoIPService_Init_Disabled(t *testing.T) {
	service := NewGeoIPService(config.Config{}, testLogger())
	service.Init()
	assert.Nil(t, service.geoReader)
}
