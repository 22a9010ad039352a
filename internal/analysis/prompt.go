package analysis

import "fmt"

// promptTemplate - фиксированная инструкция для генеративной модели.
// В промпт вставляется исходный CSV как есть, не распарсенная модель:
// модель должна видеть ровно те данные, что прислал клиент.
const promptTemplate = `You are a mental health expert analyzing student stress levels.

CRITICAL: You must respond with ONLY valid JSON in the exact format specified below. Do not include any other text, explanations, or formatting.

Task: Analyze the following data to determine if there are signs of stress:
%s

Analysis Guidelines:
- Focus on stress_level, sleep_hours, mood_score, and mental_health_status indicators
- stress_level > 40 indicates elevated stress
- sleep_hours < 6 indicates insufficient sleep
- mood_score < 2.0 indicates poor mood
- mental_health_status concerns indicate mental health issues

IMPORTANT: Write concisely. Avoid phrases like "After analyzing", "it is evident", "based on the data", "the analysis reveals". State facts directly.

Return ONLY this JSON structure:
{
    "stress_score": <number between 0 and 100, where 0 is no stress and 100 is extreme stress>,
    "reason": "<Your assessment in 500 words or less, analyzing the key indicators: stress levels, sleep patterns, mood scores, and mental health status. Include specific data points and explain why they indicate stress or lack thereof.>"
}`

// BuildPrompt строит промпт для анализа стресса. Чистая детерминированная
// функция от входного текста. Инструкция "JSON only" - это контракт
// совместимости с Response Validator, но точкой принуждения остается
// валидатор, а не промпт.
func BuildPrompt(raw string) string {
	return fmt.Sprintf(promptTemplate, raw)
}
