package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-pos-admin/internal/database"
	"go-pos-admin/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Scope pins every tool call to the asking admin's tenant. The model
// never sees data outside this business and branch.
type Scope struct {
	BusinessID uint
	BranchID   uint
}

func RunAgent(userMessage string, apiKey string, scope Scope) (string, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash-001")

	today := time.Now().Format("2006-01-02")

	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s. You are the assistant of a POS admin.

	RULES:
	1. READ: If a user asks for PRICE, COST, STOCK, or DETAILS of a product:
	   - You MUST call 'check_inventory' to get the full list of this branch.
	   - Then read the JSON to find the specific item and answer the user.
	2. SALES: If the user asks for sales/revenue, use 'get_sales_report'.
	3. DEBTS: If the user asks who still owes money ("utang"), use 'check_debts'.

	USER: %s`, today, userMessage)

	model.Tools = []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "check_inventory",
					Description: "Get the branch's full inventory list. Use this to find ANY product details like ID, Name, Price, Cost, or Stock.",
				},
				{
					Name:        "get_sales_report",
					Description: "Get total sales revenue of this branch for a date range.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
							"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
						},
						Required: []string{"start_date", "end_date"},
					},
				},
				{
					Name:        "check_debts",
					Description: "List the branch's unsettled credit (Utang) sales with customer names and amounts.",
				},
			},
		},
	}

	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt))
	if err != nil {
		return "", err
	}

	// --- HANDLE TOOL CALLS ---
	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			switch funcCall.Name {
			case "check_inventory":
				return executeCheckInventory(ctx, session, scope)
			case "get_sales_report":
				return executeSalesReport(ctx, session, funcCall, scope), nil
			case "check_debts":
				return executeCheckDebts(ctx, session, scope)
			}
		}
	}

	return printResponse(resp), nil
}

// --- TOOL IMPLEMENTATIONS ---

func executeCheckInventory(ctx context.Context, session *genai.ChatSession, scope Scope) (string, error) {
	var products []models.Product
	database.DB.
		Where("business_id = ? AND branch_id = ?", scope.BusinessID, scope.BranchID).
		Find(&products)

	type SimpleProduct struct {
		ID    uint    `json:"id"`
		Name  string  `json:"name"`
		Stock int     `json:"stock"`
		Price float64 `json:"price"`
		Cost  float64 `json:"cost"`
	}
	var simpleList []SimpleProduct
	for _, p := range products {
		simpleList = append(simpleList, SimpleProduct{
			ID:    p.ID,
			Name:  p.Name,
			Stock: p.StockQuantity,
			Price: p.Price,
			Cost:  p.CostPrice,
		})
	}

	jsonBytes, _ := json.Marshal(simpleList)

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "check_inventory",
		Response: map[string]interface{}{"inventory": string(jsonBytes)},
	})
	if err != nil {
		return "", err
	}
	return printResponse(finalResp), nil
}

func executeSalesReport(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall, scope Scope) string {
	args := funcCall.Args
	startStr := args["start_date"].(string)
	endStr := args["end_date"].(string)

	start, err1 := time.Parse("2006-01-02", startStr)
	end, err2 := time.Parse("2006-01-02", endStr)

	if err1 != nil || err2 != nil {
		return "Error: Dates must be in YYYY-MM-DD format."
	}
	end = end.Add(23*time.Hour + 59*time.Minute)

	report, err := database.GetSalesReport(scope.BusinessID, scope.BranchID, start, end)
	if err != nil {
		return "Error calculating sales."
	}

	finalResp, _ := session.SendMessage(ctx, genai.FunctionResponse{
		Name: "get_sales_report",
		Response: map[string]interface{}{
			"revenue":     report.TotalRevenue,
			"sales_count": report.TotalCount,
		},
	})
	return printResponse(finalResp)
}

func executeCheckDebts(ctx context.Context, session *genai.ChatSession, scope Scope) (string, error) {
	// The debt method label is per-business configuration.
	var biz models.Business
	database.DB.First(&biz, scope.BusinessID)
	debtMethod := biz.DebtMethodLabel
	if debtMethod == "" {
		debtMethod = "Utang"
	}

	var debts []models.Transaction
	database.DB.
		Where("business_id = ? AND branch_id = ? AND payment_method = ? AND is_paid = ?",
			scope.BusinessID, scope.BranchID, debtMethod, false).
		Preload("Customer").
		Order("sale_time desc").
		Find(&debts)

	type SimpleDebt struct {
		TransactionID uint    `json:"transaction_id"`
		Customer      string  `json:"customer"`
		Amount        float64 `json:"amount"`
		SaleDate      string  `json:"sale_date"`
	}
	var simpleList []SimpleDebt
	for _, d := range debts {
		name := "Anonymous"
		if d.Customer != nil {
			name = d.Customer.Name
		}
		simpleList = append(simpleList, SimpleDebt{
			TransactionID: d.ID,
			Customer:      name,
			Amount:        d.TotalAmount,
			SaleDate:      d.SaleTime.Format("2006-01-02"),
		})
	}

	jsonBytes, _ := json.Marshal(simpleList)

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "check_debts",
		Response: map[string]interface{}{"debts": string(jsonBytes)},
	})
	if err != nil {
		return "", err
	}
	return printResponse(finalResp), nil
}

func printResponse(resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
