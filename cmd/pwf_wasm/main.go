//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"pwf/convert"
	"pwf/schema"
	"pwf/validate"
)

func main() {
	js.Global().Set("pwfValidatePlan", js.FuncOf(validatePlan))
	js.Global().Set("pwfValidateHistory", js.FuncOf(validateHistory))
	js.Global().Set("pwfFitToPwf", js.FuncOf(fitToPwf))
	js.Global().Set("pwfTcxToPwf", js.FuncOf(tcxToPwf))
	js.Global().Set("pwfGpxToPwf", js.FuncOf(gpxToPwf))
	js.Global().Set("pwfToTcx", js.FuncOf(pwfToTcx))
	js.Global().Set("pwfToGpx", js.FuncOf(pwfToGpx))
	js.Global().Set("pwfToCsv", js.FuncOf(pwfToCsv))
	select {}
}

func failure(msg string) map[string]any {
	return map[string]any{"ok": false, "error": msg}
}

// resultJSON marshals a validation result so the JS side gets one stable
// JSON shape rather than a hand-assembled object tree.
func resultJSON(v any) map[string]any {
	out, err := json.Marshal(v)
	if err != nil {
		return failure("encode result: " + err.Error())
	}
	return map[string]any{"ok": true, "result": string(out)}
}

func textArg(args []js.Value, name string) (string, map[string]any) {
	if len(args) < 1 || args[0].IsUndefined() || args[0].IsNull() {
		return "", failure(name + " text is required")
	}
	return args[0].String(), nil
}

func bytesArg(args []js.Value, name string) ([]byte, map[string]any) {
	if len(args) < 1 || args[0].IsUndefined() || args[0].IsNull() || args[0].Get("length").Int() == 0 {
		return nil, failure(name + " bytes are required")
	}
	data := make([]byte, args[0].Get("length").Int())
	if n := js.CopyBytesToGo(data, args[0]); n == 0 {
		return nil, failure("failed to read " + name + " bytes from JS input")
	}
	return data, nil
}

func boolArg(args []js.Value, index int) bool {
	if len(args) <= index || args[index].Type() != js.TypeBoolean {
		return false
	}
	return args[index].Bool()
}

func validatePlan(_ js.Value, args []js.Value) any {
	doc, errObj := textArg(args, "plan yaml")
	if errObj != nil {
		return errObj
	}
	return resultJSON(validate.Plan([]byte(doc)))
}

func validateHistory(_ js.Value, args []js.Value) any {
	doc, errObj := textArg(args, "history yaml")
	if errObj != nil {
		return errObj
	}
	return resultJSON(validate.History([]byte(doc)))
}

func conversionResult(result *convert.Result) map[string]any {
	return map[string]any{
		"ok":       true,
		"pwf_yaml": string(result.PWFYAML),
		"warnings": warningsToAny(result.Warnings),
	}
}

func warningsToAny(warnings []convert.Warning) []any {
	out := make([]any, len(warnings))
	for i, w := range warnings {
		out[i] = w.String()
	}
	return out
}

func fitToPwf(_ js.Value, args []js.Value) any {
	data, errObj := bytesArg(args, "fit")
	if errObj != nil {
		return errObj
	}
	result, err := convert.FITToPWF(data, boolArg(args, 1))
	if err != nil {
		return failure(err.Error())
	}
	return conversionResult(result)
}

func tcxToPwf(_ js.Value, args []js.Value) any {
	doc, errObj := textArg(args, "tcx")
	if errObj != nil {
		return errObj
	}
	result, err := convert.TCXToPWF([]byte(doc), boolArg(args, 1))
	if err != nil {
		return failure(err.Error())
	}
	return conversionResult(result)
}

func gpxToPwf(_ js.Value, args []js.Value) any {
	doc, errObj := textArg(args, "gpx")
	if errObj != nil {
		return errObj
	}
	result, err := convert.GPXToPWF([]byte(doc), boolArg(args, 1))
	if err != nil {
		return failure(err.Error())
	}
	return conversionResult(result)
}

func parseHistoryArg(args []js.Value) (*schema.History, map[string]any) {
	doc, errObj := textArg(args, "history yaml")
	if errObj != nil {
		return nil, errObj
	}
	history, err := schema.ParseHistory([]byte(doc))
	if err != nil {
		return nil, failure(err.Error())
	}
	return history, nil
}

func pwfToTcx(_ js.Value, args []js.Value) any {
	history, errObj := parseHistoryArg(args)
	if errObj != nil {
		return errObj
	}
	result, err := convert.PWFToTCX(history)
	if err != nil {
		return failure(err.Error())
	}
	return map[string]any{
		"ok":       true,
		"tcx_xml":  result.TCXXML,
		"warnings": warningsToAny(result.Warnings),
	}
}

func pwfToGpx(_ js.Value, args []js.Value) any {
	history, errObj := parseHistoryArg(args)
	if errObj != nil {
		return errObj
	}
	result, err := convert.PWFToGPX(history)
	if err != nil {
		return failure(err.Error())
	}
	return map[string]any{
		"ok":       true,
		"gpx_xml":  result.GPXXML,
		"warnings": warningsToAny(result.Warnings),
	}
}

func pwfToCsv(_ js.Value, args []js.Value) any {
	history, errObj := parseHistoryArg(args)
	if errObj != nil {
		return errObj
	}
	result, err := convert.PWFToCSV(history)
	if err != nil {
		return failure(err.Error())
	}
	return map[string]any{
		"ok":                 true,
		"csv_data":           result.CSVData,
		"warnings":           warningsToAny(result.Warnings),
		"data_points":        result.DataPoints,
		"workouts_processed": result.WorkoutsProcessed,
	}
}
