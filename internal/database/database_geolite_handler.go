package database

import (
	"net"
	"net/netip"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/oschwald/geoip2-golang"
	"golang.org/x/sync/singleflight"

	"geonest/internal/config"
)

var (
	countryDB *geoip2.Reader
	geoLiteMu sync.RWMutex

	countryCache  sync.Map
	countryLookup singleflight.Group
)

// LoadGeoLiteDatabase opens the country database configured under
// geolite.country_db_path. Lookups degrade to empty suggestions when no
// database is configured or the file cannot be read.
func LoadGeoLiteDatabase() error {
	path := config.GetConfig().GeoLite.CountryDBPath
	if path == "" {
		log.Debug("No GeoLite country database configured, suggestions disabled")
		return nil
	}

	reader, err := geoip2.Open(path)
	if err != nil {
		return err
	}

	geoLiteMu.Lock()
	old := countryDB
	countryDB = reader
	geoLiteMu.Unlock()

	if old != nil {
		_ = old.Close()
	}

	log.Debug("GeoLite country database loaded", "path", path)
	return nil
}

func GeoLiteAvailable() bool {
	geoLiteMu.RLock()
	defer geoLiteMu.RUnlock()
	return countryDB != nil
}

// SuggestCountry returns the ISO country code GeoLite reports for the
// first address of the network, or "" when nothing can be suggested.
// Results are cached per network; concurrent previews of the same file
// collapse into one lookup.
func SuggestCountry(network string) string {
	if !GeoLiteAvailable() {
		return ""
	}

	if cached, ok := countryCache.Load(network); ok {
		return cached.(string)
	}

	result, _, _ := countryLookup.Do(network, func() (interface{}, error) {
		code := lookupCountryCode(network)
		countryCache.Store(network, code)
		return code, nil
	})

	return result.(string)
}

func lookupCountryCode(network string) string {
	prefix, err := netip.ParsePrefix(strings.TrimSpace(network))
	if err != nil {
		return ""
	}

	ip := net.IP(prefix.Addr().AsSlice())

	geoLiteMu.RLock()
	defer geoLiteMu.RUnlock()
	if countryDB == nil {
		return ""
	}

	record, err := countryDB.Country(ip)
	if err != nil {
		return ""
	}

	return strings.ToUpper(record.Country.IsoCode)
}
