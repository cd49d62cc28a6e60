package httpapi

import "github.com/openfan/openfand/internal/config"

// profileRequest is the wire shape of a profile add/update request;
// config.Profile itself stays free of JSON tags since internal/config
// has no dependency on the transport encoding.
type profileRequest struct {
	Mode   string `json:"mode"`
	Values []int  `json:"values"`
}

func (p profileRequest) toConfig() config.Profile {
	return config.Profile{Mode: config.ProfileMode(p.Mode), Values: p.Values}
}

type curvePointRequest struct {
	TempC float64 `json:"temp_c"`
	PWM   int     `json:"pwm"`
}

type curveRequest struct {
	Points []curvePointRequest `json:"points"`
}

func (c curveRequest) toConfig() config.Curve {
	points := make([]config.CurvePoint, len(c.Points))
	for i, p := range c.Points {
		points[i] = config.CurvePoint{TempC: p.TempC, PWM: p.PWM}
	}
	return config.Curve{Points: points}
}

type fanRefRequest struct {
	Controller string `json:"controller"`
	FanID      int    `json:"fan_id"`
}

type zoneRequest struct {
	Description string          `json:"description"`
	Fans        []fanRefRequest `json:"fans"`
}

func (z zoneRequest) toConfig() config.Zone {
	fans := make([]config.FanRef, len(z.Fans))
	for i, f := range z.Fans {
		fans[i] = config.FanRef{Controller: f.Controller, FanID: f.FanID}
	}
	return config.Zone{Description: z.Description, Fans: fans}
}

type aliasRequest struct {
	Name string `json:"name"`
}

type cfmRequest struct {
	CFMAt100 float64 `json:"cfm_at_100"`
}
