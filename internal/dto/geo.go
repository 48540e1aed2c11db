package dto

import (
	"time"

	"github.com/georef/geo-reference-api/internal/models"
)

// ContinentDTO represents a continent in API responses
type ContinentDTO struct {
	ID        uint64       `json:"id"`
	Name      string       `json:"name"`
	Slug      string       `json:"slug"`
	CreatedAt time.Time    `json:"created_at"`
	AuthorID  *uint64      `json:"author_id,omitempty"`
	Author    *UserDTO     `json:"author,omitempty"`
	Countries []CountryDTO `json:"countries,omitempty"`
}

// CountryDTO represents a country in API responses
type CountryDTO struct {
	ID           uint64        `json:"id"`
	Name         string        `json:"name"`
	PostalCode   *string       `json:"postal_code"`
	Abbreviation *string       `json:"abbreviation"`
	Slug         string        `json:"slug"`
	CreatedAt    time.Time     `json:"created_at"`
	IsDeleted    bool          `json:"is_deleted"`
	ContinentID  uint64        `json:"continent_id"`
	Continent    *ContinentDTO `json:"continent,omitempty"`
	Cities       []CityDTO     `json:"cities,omitempty"`
}

// CityDTO represents a city in API responses
type CityDTO struct {
	ID        uint64      `json:"id"`
	Name      string      `json:"name"`
	Slug      string      `json:"slug"`
	CreatedAt time.Time   `json:"created_at"`
	IsDeleted bool        `json:"is_deleted"`
	CountryID uint64      `json:"country_id"`
	Country   *CountryDTO `json:"country,omitempty"`
	Ports     []PortDTO   `json:"ports,omitempty"`
}

// PortDTO represents a port in API responses
type PortDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Latitude  *string   `json:"latitude"`
	Longitude *string   `json:"longitude"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	IsDeleted bool      `json:"is_deleted"`
	CityID    uint64    `json:"city_id"`
	City      *CityDTO  `json:"city,omitempty"`
}

// Conversion functions

// ToContinentDTO converts a Continent model to ContinentDTO
func ToContinentDTO(continent models.Continent) ContinentDTO {
	dto := ContinentDTO{
		ID:        continent.ID,
		Name:      continent.Name,
		Slug:      continent.Slug,
		CreatedAt: continent.CreatedAt,
		AuthorID:  continent.AuthorID,
	}

	// Include author if preloaded
	if continent.Author != nil && continent.Author.ID != 0 {
		author := ToUserDTO(*continent.Author)
		dto.Author = &author
	}

	// Include countries if preloaded
	if len(continent.Countries) > 0 {
		dto.Countries = make([]CountryDTO, len(continent.Countries))
		for i, country := range continent.Countries {
			dto.Countries[i] = ToCountryDTO(country)
		}
	}

	return dto
}

// ToCountryDTO converts a Country model to CountryDTO
func ToCountryDTO(country models.Country) CountryDTO {
	dto := CountryDTO{
		ID:           country.ID,
		Name:         country.Name,
		PostalCode:   country.PostalCode,
		Abbreviation: country.Abbreviation,
		Slug:         country.Slug,
		CreatedAt:    country.CreatedAt,
		IsDeleted:    country.IsDeleted,
		ContinentID:  country.ContinentID,
	}

	if country.Continent != nil && country.Continent.ID != 0 {
		continent := ToContinentDTO(*country.Continent)
		// Avoid echoing the child list back inside its own parent.
		continent.Countries = nil
		dto.Continent = &continent
	}

	if len(country.Cities) > 0 {
		dto.Cities = make([]CityDTO, len(country.Cities))
		for i, city := range country.Cities {
			dto.Cities[i] = ToCityDTO(city)
		}
	}

	return dto
}

// ToCityDTO converts a City model to CityDTO
func ToCityDTO(city models.City) CityDTO {
	dto := CityDTO{
		ID:        city.ID,
		Name:      city.Name,
		Slug:      city.Slug,
		CreatedAt: city.CreatedAt,
		IsDeleted: city.IsDeleted,
		CountryID: city.CountryID,
	}

	if city.Country != nil && city.Country.ID != 0 {
		country := ToCountryDTO(*city.Country)
		country.Cities = nil
		dto.Country = &country
	}

	if len(city.Ports) > 0 {
		dto.Ports = make([]PortDTO, len(city.Ports))
		for i, port := range city.Ports {
			dto.Ports[i] = ToPortDTO(port)
		}
	}

	return dto
}

// ToPortDTO converts a Port model to PortDTO
func ToPortDTO(port models.Port) PortDTO {
	dto := PortDTO{
		ID:        port.ID,
		Name:      port.Name,
		Latitude:  port.Latitude,
		Longitude: port.Longitude,
		Slug:      port.Slug,
		CreatedAt: port.CreatedAt,
		IsDeleted: port.IsDeleted,
		CityID:    port.CityID,
	}

	if port.City != nil && port.City.ID != 0 {
		city := ToCityDTO(*port.City)
		city.Ports = nil
		dto.City = &city
	}

	return dto
}

// Slice converters

func ToContinentDTOs(continents []models.Continent) []ContinentDTO {
	dtos := make([]ContinentDTO, len(continents))
	for i, c := range continents {
		dtos[i] = ToContinentDTO(c)
	}
	return dtos
}

func ToCountryDTOs(countries []models.Country) []CountryDTO {
	dtos := make([]CountryDTO, len(countries))
	for i, c := range countries {
		dtos[i] = ToCountryDTO(c)
	}
	return dtos
}

func ToCityDTOs(cities []models.City) []CityDTO {
	dtos := make([]CityDTO, len(cities))
	for i, c := range cities {
		dtos[i] = ToCityDTO(c)
	}
	return dtos
}

func ToPortDTOs(ports []models.Port) []PortDTO {
	dtos := make([]PortDTO, len(ports))
	for i, p := range ports {
		dtos[i] = ToPortDTO(p)
	}
	return dtos
}
