// Package report renders prediction results as the fixed-width comparison table printed by the
// ingester CLI.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/predict"
)

const (
	labelWidth     = 20
	headerWidth    = 30
	predictedWidth = 18
	measuredWidth  = 25
)

type line struct {
	label     string
	predicted float64
	measured  *float64
}

// Render writes the Parameter / Predicted / Measured table for res. Missing measurements are
// printed as n/a.
func Render(w io.Writer, res *predict.Result) error {
	n := res.Nearest
	flows := res.Flows.Rounded()
	measuredCurrent := res.Electrical.MeasuredCurrentA
	measuredFrequency := res.Electrical.MeasuredFrequencyHz

	lines := []line{
		{"DES (%)", res.Query.DES * 100, n.DESPercent},
		{"Power Output (kW)", res.Query.PowerKW, n.PowerOutput},
		{"Efficiency (%)", res.EfficiencyPercent, n.EfficiencyElectric},
		{"Diesel Flow (kg/h)", flows.DieselMassFlow, n.DieselMassFlow},
		{"CH₄ Flow (kg/h)", flows.CH4MassFlow, n.CH4MassFlowCalc},
		{"Exhaust Temp (°C)", res.ExhaustTemp, n.ExhaustTemp},
		{"Current (A)", res.Electrical.CurrentA, &measuredCurrent},
		{"Frequency (Hz)", res.Electrical.FrequencyHz, &measuredFrequency},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-*s%-*s%s\n", labelWidth, "Parameter", headerWidth, "Predicted/Calculated", "Measured (Closest)")
	b.WriteString(strings.Repeat("-", 75) + "\n")
	for _, l := range lines {
		fmt.Fprintf(&b, "%-*s%*.2f", labelWidth, l.label, predictedWidth, l.predicted)
		if l.measured == nil {
			fmt.Fprintf(&b, "%*s\n", measuredWidth, "n/a")
		} else {
			fmt.Fprintf(&b, "%*.2f\n", measuredWidth, *l.measured)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderModel writes the efficiency model summary at one power set-point.
func RenderModel(w io.Writer, r *predict.ModelReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%-*s%.2f\n", 26, "Target power (kW)", r.TargetPower)
	fmt.Fprintf(&b, "%-*s%.2f\n", 26, "Predicted efficiency (%)", r.PredictedEfficiency)
	fmt.Fprintf(&b, "%-*s%.2f\n", 26, "Closest measured (kW)", r.ClosestMeasuredPower)
	fmt.Fprintf(&b, "%-*s%s\n", 26, "Measured efficiency (%)", optional(r.MeasuredEfficiency))
	fmt.Fprintf(&b, "%-*s%s\n", 26, "Difference (%)", optional(r.Difference))
	if r.BestParams != nil {
		fmt.Fprintf(&b, "%-*s%s\n", 26, "Best params", r.BestParams)
	}
	fmt.Fprintf(&b, "%-*s%.4f\n", 26, "CV R²", r.CVR2)
	fmt.Fprintf(&b, "%-*s%.4f\n", 26, "Train RMSE", r.TrainRMSE)
	fmt.Fprintf(&b, "%-*s%.4f\n", 26, "Train R²", r.TrainR2)
	_, err := io.WriteString(w, b.String())
	return err
}

func optional(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}
