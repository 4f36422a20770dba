package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

func main() {
	baseURL := "http://localhost:8080"
	if value := os.Getenv("API_BASE_URL"); value != "" {
		baseURL = value
	}
	client := &http.Client{Timeout: 30 * time.Second}

	// Проверяем health endpoint
	fmt.Println("Проверяем health endpoint...")
	if err := get(client, baseURL+"/api/v1/health"); err != nil {
		fmt.Printf("Ошибка при обращении к health endpoint: %v\n", err)
		return
	}

	// Калибровка по эталону: go run ./cmd/client <длина_см> [x1 y1 x2 y2]
	if len(os.Args) > 1 {
		if err := testCalibration(client, baseURL, os.Args[1:]); err != nil {
			fmt.Printf("Ошибка при тестировании калибровки: %v\n", err)
		}
	} else {
		fmt.Println("Для тестирования калибровки запустите: go run ./cmd/client <длина_эталона_см> [x1 y1 x2 y2]")
	}

	if err := get(client, baseURL+"/api/v1/camera/status"); err != nil {
		fmt.Printf("Ошибка при обращении к статусу камеры: %v\n", err)
	}
}

func testCalibration(client *http.Client, baseURL string, args []string) error {
	length, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("неверная длина эталона %q: %w", args[0], err)
	}

	// По умолчанию эталон поперек центра кадра
	coords := []float64{10, 50, 90, 50}
	if len(args) == 5 {
		for i, arg := range args[1:] {
			if coords[i], err = strconv.ParseFloat(arg, 64); err != nil {
				return fmt.Errorf("неверная координата %q: %w", arg, err)
			}
		}
	}

	body, err := json.Marshal(map[string]any{
		"name":                "Smoke calibration",
		"calibration_points":  [][]float64{{coords[0], coords[1]}, {coords[2], coords[3]}},
		"reference_length_cm": length,
	})
	if err != nil {
		return fmt.Errorf("ошибка сериализации запроса: %w", err)
	}

	fmt.Println("Отправляем калибровку...")
	resp, err := client.Post(baseURL+"/api/v1/calibration", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ошибка отправки запроса: %w", err)
	}
	defer resp.Body.Close()

	return printResponse("Ответ калибровки", resp)
}

func get(client *http.Client, url string) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return printResponse("Ответ "+url, resp)
}

func printResponse(title string, resp *http.Response) error {
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}
	fmt.Printf("%s (статус %d):\n%s\n\n", title, resp.StatusCode, string(respBody))
	return nil
}
