package ai

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/divyaanshikaushik/Sahayak/internal/platform/errs"
)

// Sanitize strips markdown emphasis markers and angle brackets. Applied to
// caller-supplied prompt context before it reaches the model and to the
// model's output before it reaches anything else.
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "*", "")
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	return s
}

const analyzeImagePromptFmt = `You are a medical diagnostic assistant. Analyze the provided medical image and symptoms: %s

Please provide a structured analysis in the following format (do not include any markdown ** symbols):

DISCLAIMER:
This is an AI-assisted preliminary analysis for informational purposes only. This is not a substitute for professional medical advice.

ANALYSIS OF IMAGE:
[Provide a clear, professional description of what you observe in the medical image]

POTENTIAL CONDITIONS:
• [Condition 1]: [Brief explanation]
• [Condition 2]: [Brief explanation]
• [Additional conditions as needed]

LEVEL OF CONCERN:
[State whether the concern level is Low, Medium, or High and provide a brief justification]

RECOMMENDED NEXT STEPS:
• [Step 1]
• [Step 2]
• [Additional steps as needed]

MEDICAL ATTENTION:
[Clearly state whether immediate medical attention is recommended]`

// AnalyzeImage runs a vision analysis of a medical image in the context of
// the reported symptoms.
func (c *Client) AnalyzeImage(ctx context.Context, image []byte, mimeType, symptoms string) (string, error) {
	const op = "ai.analyze_image"
	if len(image) == 0 || strings.TrimSpace(symptoms) == "" {
		return "", errs.E(errs.KindValidation, op, "image and symptoms are required")
	}

	prompt := fmt.Sprintf(analyzeImagePromptFmt, Sanitize(symptoms))
	return c.generate(ctx, op, []part{textPart(prompt), imagePart(mimeType, image)})
}

// SummarizeDocument produces a structured clinical summary of extracted
// document text.
func (c *Client) SummarizeDocument(ctx context.Context, text string) (string, error) {
	const op = "ai.summarize_document"
	if strings.TrimSpace(text) == "" {
		return "", errs.E(errs.KindValidation, op, "document text is required")
	}

	prompt := fmt.Sprintf(`Please analyze and summarize the following medical document. Focus on key findings, diagnoses, and recommendations:

%s

Please provide a structured summary in the following format:
1. Key Findings
2. Diagnoses
3. Recommendations
4. Follow-up Actions`, Sanitize(text))

	return c.generate(ctx, op, []part{textPart(prompt)})
}

// PredictDisease analyzes symptoms and health parameters for potential
// diagnoses.
func (c *Client) PredictDisease(ctx context.Context, symptoms string, parameters map[string]string) (string, error) {
	const op = "ai.predict_disease"
	if strings.TrimSpace(symptoms) == "" {
		return "", errs.E(errs.KindValidation, op, "symptoms are required")
	}

	prompt := fmt.Sprintf(`As a medical diagnostic AI, analyze the following symptoms and health parameters to provide potential diagnoses and recommendations. Please consider Indian population health factors.

Symptoms:
%s

Health Parameters:
%s

Please provide a structured analysis in the following format:
1. Potential Diagnoses (ordered by likelihood)
2. Risk Factors
3. Immediate Recommendations
4. Lifestyle Modifications
5. Required Tests/Investigations
6. Follow-up Timeline`, Sanitize(symptoms), formatParameters(parameters))

	return c.generate(ctx, op, []part{textPart(prompt)})
}

// HealthParameters are the vitals captured during a visit.
type HealthParameters struct {
	BloodPressure string
	BloodSugar    string
	Cholesterol   string
	BMI           string
}

// GenerateReport drafts a full medical assessment report from a visit's
// symptoms, vitals and reason.
func (c *Client) GenerateReport(ctx context.Context, symptoms string, params HealthParameters, visitReason string) (string, error) {
	const op = "ai.generate_report"
	if strings.TrimSpace(symptoms) == "" {
		return "", errs.E(errs.KindValidation, op, "symptoms are required")
	}

	prompt := fmt.Sprintf(`As a medical professional, generate a detailed medical report based on the following information:

Visit Reason: %s

Patient Symptoms:
%s

Health Parameters:
- Blood Pressure: %s
- Blood Sugar: %s
- Cholesterol: %s
- BMI: %s

Please provide a comprehensive medical report in the following format:

MEDICAL ASSESSMENT REPORT
Date: [Current Date]

PRESENTING SYMPTOMS:
[List all symptoms]

VITAL SIGNS & MEASUREMENTS:
[List all health parameters]

CLINICAL ASSESSMENT:
[Detailed analysis based on symptoms and parameters]

POTENTIAL DIAGNOSES:
[List potential conditions in order of likelihood]

RISK FACTORS:
[Identify key risk factors]

RECOMMENDATIONS:
[Treatment and lifestyle recommendations]

FOLLOW-UP PLAN:
[Specific follow-up instructions]

ADDITIONAL NOTES:
[Any other relevant medical observations]`,
		Sanitize(visitReason), Sanitize(symptoms),
		Sanitize(params.BloodPressure), Sanitize(params.BloodSugar),
		Sanitize(params.Cholesterol), Sanitize(params.BMI))

	return c.generate(ctx, op, []part{textPart(prompt)})
}

func formatParameters(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "- %s: %s\n", Sanitize(k), Sanitize(params[k]))
	}
	return strings.TrimRight(b.String(), "\n")
}
