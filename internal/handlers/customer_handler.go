package handlers

import (
	"net/http"
	"strconv"

	"go-pos-admin/internal/database"
	"go-pos-admin/internal/models"

	"github.com/gin-gonic/gin"
)

// --- GET: List the branch's customers ---
func GetCustomers(c *gin.Context) {
	businessID, branchID := tenantScope(c)

	var customers []models.Customer
	err := database.DB.
		Where("business_id = ? AND branch_id = ?", businessID, branchID).
		Find(&customers).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	c.JSON(http.StatusOK, customers)
}

// --- POST: Add a customer ---
func AddCustomer(c *gin.Context) {
	businessID, branchID := tenantScope(c)

	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if customer.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer name is required"})
		return
	}

	customer.BusinessID = businessID
	customer.BranchID = branchID

	if err := database.DB.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// --- PUT: Update a customer ---
func UpdateCustomer(c *gin.Context) {
	businessID, branchID := tenantScope(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Customer ID"})
		return
	}

	var customer models.Customer
	err = database.DB.
		Where("business_id = ? AND branch_id = ?", businessID, branchID).
		First(&customer, id).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	delete(updateData, "business_id")
	delete(updateData, "branch_id")

	if err := database.DB.Model(&customer).Updates(updateData).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer updated successfully", "customer": customer})
}

// --- DELETE: Remove a customer ---
func DeleteCustomer(c *gin.Context) {
	businessID, branchID := tenantScope(c)
	id := c.Param("id")

	result := database.DB.
		Where("business_id = ? AND branch_id = ?", businessID, branchID).
		Delete(&models.Customer{}, id)
	if result.Error != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not delete customer. They might be linked to past sales."})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
