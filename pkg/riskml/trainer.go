package riskml

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/deepcare-ai/deepcare/pkg/models"
)

// TrainFromCSV fits a model on a FAERS-derived training set. The CSV must
// carry a header with drug, symptom, faers_reports, and label columns;
// labels are either class indices or risk level names.
func TrainFromCSV(path string, numTrees, maxDepth int, seed int64) (*Model, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open training data: %w", err)
	}
	defer file.Close()

	drugs, symptoms, reports, labels, err := readTrainingData(file)
	if err != nil {
		return nil, fmt.Errorf("read training data %s: %w", path, err)
	}

	model := &Model{
		Forest:   NewForest(numTrees, maxDepth, seed),
		Drugs:    NewLabelEncoder(drugs),
		Symptoms: NewLabelEncoder(symptoms),
	}

	x := make([][]float64, len(labels))
	for i := range labels {
		x[i] = []float64{
			float64(model.Drugs.Encode(drugs[i])),
			float64(model.Symptoms.Encode(symptoms[i])),
			float64(reports[i]),
		}
	}

	if err := model.Forest.Train(x, labels, len(models.RiskLevels)); err != nil {
		return nil, fmt.Errorf("train risk classifier: %w", err)
	}
	return model, nil
}

func readTrainingData(r io.Reader) (drugs, symptoms []string, reports, labels []int, err error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"drug", "symptom", "faers_reports", "label"} {
		if _, ok := columns[required]; !ok {
			return nil, nil, nil, nil, fmt.Errorf("missing column %q", required)
		}
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, nil, nil, err
		}

		count, err := strconv.Atoi(strings.TrimSpace(record[columns["faers_reports"]]))
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("line %d: bad faers_reports: %w", line, err)
		}
		label, err := parseLabel(record[columns["label"]])
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("line %d: %w", line, err)
		}

		drugs = append(drugs, strings.ToLower(strings.TrimSpace(record[columns["drug"]])))
		symptoms = append(symptoms, strings.ToLower(strings.TrimSpace(record[columns["symptom"]])))
		reports = append(reports, count)
		labels = append(labels, label)
	}
	if len(labels) == 0 {
		return nil, nil, nil, nil, fmt.Errorf("no training samples")
	}
	return drugs, symptoms, reports, labels, nil
}

func parseLabel(raw string) (int, error) {
	value := strings.TrimSpace(raw)
	if idx, err := strconv.Atoi(value); err == nil {
		if idx < 0 || idx >= len(models.RiskLevels) {
			return 0, fmt.Errorf("label index %d out of range", idx)
		}
		return idx, nil
	}
	for i, level := range models.RiskLevels {
		if strings.EqualFold(value, level) ||
			strings.EqualFold(value, strings.TrimSuffix(level, " Risk")) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown label %q", raw)
}
