package strategy

import "fmt"

// Build constructs a strategy from a config name and loosely-typed params
// (the YAML/JSON `strategy.params` map). Unknown names are an error;
// missing params fall back to the built-in defaults.
func Build(name string, params map[string]any) (Strategy, error) {
	switch name {
	case "ma-cross":
		short := int(numParam(params, "short_window", 5))
		long := int(numParam(params, "long_window", 20))
		buy := int64(numParam(params, "buy_shares", 100))
		if short >= long {
			return nil, fmt.Errorf("ma-cross: short_window (%d) must be < long_window (%d)", short, long)
		}
		return NewMACross(short, long, buy), nil
	case "momentum":
		window := int(numParam(params, "momentum_window", 10))
		threshold := numParam(params, "threshold", 0.05)
		buy := int64(numParam(params, "buy_shares", 100))
		return NewMomentum(window, threshold, buy), nil
	default:
		return nil, fmt.Errorf("unsupported strategy: %q", name)
	}
}

func numParam(m map[string]any, key string, def float64) float64 {
	if v, ok := m[key]; ok && v != nil {
		switch x := v.(type) {
		case float64:
			return x
		case int:
			return float64(x)
		}
	}
	return def
}
