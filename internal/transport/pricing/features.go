package pricing

// CarFeatures is one row of the automobile price dataset. The scoring service
// takes every column as a string.
type CarFeatures struct {
	Symboling        string `json:"symboling" validate:"required,numeric"`
	NormalizedLosses string `json:"normalized-losses" validate:"required,numeric"`
	Make             string `json:"make" validate:"required"`
	FuelType         string `json:"fuel-type" validate:"required,oneof=gas diesel"`
	Aspiration       string `json:"aspiration" validate:"required,oneof=std turbo"`
	NumOfDoors       string `json:"num-of-doors" validate:"required,oneof=two four"`
	BodyStyle        string `json:"body-style" validate:"required,oneof=convertible hardtop hatchback sedan wagon"`
	DriveWheels      string `json:"drive-wheels" validate:"required,oneof=fwd rwd 4wd"`
	EngineLocation   string `json:"engine-location" validate:"required,oneof=front rear"`
	WheelBase        string `json:"wheel-base" validate:"required,numeric"`
	Length           string `json:"length" validate:"required,numeric"`
	Width            string `json:"width" validate:"required,numeric"`
	Height           string `json:"height" validate:"required,numeric"`
	CurbWeight       string `json:"curb-weight" validate:"required,numeric"`
	EngineType       string `json:"engine-type" validate:"required"`
	NumOfCylinders   string `json:"num-of-cylinders" validate:"required"`
	EngineSize       string `json:"engine-size" validate:"required,numeric"`
	FuelSystem       string `json:"fuel-system" validate:"required"`
	Bore             string `json:"bore" validate:"required,numeric"`
	Stroke           string `json:"stroke" validate:"required,numeric"`
	CompressionRatio string `json:"compression-ratio" validate:"required,numeric"`
	Horsepower       string `json:"horsepower" validate:"required,numeric"`
	PeakRPM          string `json:"peak-rpm" validate:"required,numeric"`
	CityMPG          string `json:"city-mpg" validate:"required,numeric"`
	HighwayMPG       string `json:"highway-mpg" validate:"required,numeric"`
	Price            string `json:"price" validate:"required,numeric"`
}

// SampleCar is the 1986 Alfa Romeo convertible used in the course demo.
func SampleCar() CarFeatures {
	return CarFeatures{
		Symboling:        "3",
		NormalizedLosses: "1",
		Make:             "alfa-romero",
		FuelType:         "gas",
		Aspiration:       "std",
		NumOfDoors:       "two",
		BodyStyle:        "convertible",
		DriveWheels:      "rwd",
		EngineLocation:   "front",
		WheelBase:        "88.6",
		Length:           "168.8",
		Width:            "64.1",
		Height:           "48.8",
		CurbWeight:       "2548",
		EngineType:       "dohc",
		NumOfCylinders:   "four",
		EngineSize:       "130",
		FuelSystem:       "mpfi",
		Bore:             "3.47",
		Stroke:           "2.68",
		CompressionRatio: "9",
		Horsepower:       "111",
		PeakRPM:          "5000",
		CityMPG:          "21",
		HighwayMPG:       "27",
		Price:            "13495",
	}
}
