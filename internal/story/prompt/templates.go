package prompt

// System instructions for the two story flavors. Kept short: every token
// costs latency, and the hard rules are re-checked in code anyway.
const (
	SystemPromptBasic = `Du schreibst sehr kurze, neutrale Mini-Geschichten auf Deutsch für ein Gesellschaftsspiel.
Du MUSST GENAU zwei Sätze liefern.
Regeln:
- Satz 1: Situation, ohne das Motivwort.
- Satz 2: nur wörtliche Rede.
- Verwende keine Farbwörter im Text.
- Verwende das Motivwort NICHT.
- Kein Genitiv.
- Kein 'sagte', 'meinte', 'dachte'.
`

	SystemPromptAtmospheric = `Du schreibst sehr kurze, atmosphärische Mini-Geschichten auf Deutsch für ein Gesellschaftsspiel.
Du MUSST GENAU zwei Sätze liefern.
Regeln:
- Satz 1: eine sinnliche Situation (Geräusch, Licht oder Bewegung), ohne das Motivwort, maximal 95 Zeichen.
- Satz 2: nur wörtliche Rede.
- Verwende keine Farbwörter im Text.
- Verwende das Motivwort NICHT.
- Kein Genitiv.
- Kein 'sagte', 'meinte', 'dachte'.
`

	// UserPromptTemplate receives the motif noun via fmt.Sprintf.
	UserPromptTemplate = `Die unsichtbare Hauptfigur ist: "%s".
Schreibe GENAU zwei Sätze.
Satz 2 endet mit einem abschließenden Anführungszeichen und einem Satzzeichen (. ? oder !).
`
)

// FallbackText is the fixed, pre-validated story returned when every
// generation attempt violates the rules. It names no motif and no color.
const FallbackText = `Etwas Unbenanntes wartete still am Rand. "Jetzt ist Bewegung drin!"`
