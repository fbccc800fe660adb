package models

// RegionWeather is the flat weather record returned by the weather backend.
// Every field is optional.
type RegionWeather struct {
	AddressName         *string  `json:"addressName"`
	Sido                *string  `json:"sido"`
	Sigungu             *string  `json:"sigungu"`
	Dong                *string  `json:"dong"`
	Lat                 *float64 `json:"lat"`
	Lon                 *float64 `json:"lon"`
	Temperature2m       *float64 `json:"temperature2m"`       // ℃
	Humidity            *float64 `json:"humidity"`            // %
	ApparentTemperature *float64 `json:"apparentTemperature"` // ℃
	WeatherCode         *int     `json:"weatherCode"`         // WMO code
}
