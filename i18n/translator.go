package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "received").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	base := dict(t.lang, code)
	if base == "" {
		base = code
	}
	if exp, rec := data["expected"], data["received"]; exp != "" || rec != "" {
		suffix := ""
		if exp != "" {
			suffix = ": expected " + exp
		}
		if rec != "" {
			if suffix == "" {
				suffix = ": received " + rec
			} else {
				suffix += ", received " + rec
			}
		}
		return base + suffix
	}
	return base
}

func dict(lang, code string) string {
	switch lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "unknown_key":
			return "未知のキーです"
		case "duplicate_key":
			return "キーが重複しています"
		case "too_short":
			return "短すぎます"
		case "too_long":
			return "長すぎます"
		case "too_small":
			return "小さすぎます"
		case "too_big":
			return "大きすぎます"
		case "pattern":
			return "パターンに一致しません"
		case "invalid_format":
			return "形式が不正です"
		case "not_multiple":
			return "倍数ではありません"
		case "not_finite":
			return "有限数ではありません"
		case "not_unique":
			return "要素が重複しています"
		case "custom":
			return "検証に失敗しました"
		case "arity_mismatch":
			return "要素数が一致しません"
		case "invalid_enum":
			return "許可されていない値です"
		case "union_exhausted":
			return "どの候補にも一致しません"
		case "depth_exceeded":
			return "ネストが深すぎます"
		case "overflow":
			return "値が範囲を超えています"
		case "parse_error":
			return "解析エラー"
		case "too_large":
			return "入力が大きすぎます"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "unknown_key":
			return "unknown key"
		case "duplicate_key":
			return "duplicate key"
		case "too_short":
			return "too short"
		case "too_long":
			return "too long"
		case "too_small":
			return "too small"
		case "too_big":
			return "too big"
		case "pattern":
			return "pattern mismatch"
		case "invalid_format":
			return "invalid format"
		case "not_multiple":
			return "not a multiple"
		case "not_finite":
			return "not finite"
		case "not_unique":
			return "duplicate elements"
		case "custom":
			return "validation failed"
		case "arity_mismatch":
			return "wrong number of elements"
		case "invalid_enum":
			return "value not allowed"
		case "union_exhausted":
			return "no union option matched"
		case "depth_exceeded":
			return "nesting too deep"
		case "overflow":
			return "value out of range"
		case "parse_error":
			return "parse error"
		case "too_large":
			return "input too large"
		}
	}
	return ""
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
