package catalog

import "github.com/theirongolddev/fivehundred/internal/nutrition"

// measuredFoods are quoted per reference quantity and scaled to the amount
// eaten, instead of being fixed portions.
var measuredFoods = []Item{
	{Name: "Almond milk", basis: nutrition.PerCup, Calories: 91, Protein: 3.6},
	{Name: "Apple", basis: nutrition.PerUnit, Calories: 95, Protein: 0.5},
	{Name: "Asparagus (cooked)", basis: nutrition.Per100g, Calories: 20, Protein: 2.2},
	{Name: "Banana", basis: nutrition.PerUnit, Calories: 105, Protein: 1.3},
	{Name: "Blueberries", basis: nutrition.PerCup, Calories: 84, Protein: 1.1},
	{Name: "Butter", basis: nutrition.PerCup, Calories: 1628, Protein: 1.9},
	{Name: "Carrot", basis: nutrition.Per100g, Calories: 41, Protein: 0.9},
	{Name: "Chicken breast", basis: nutrition.Per100g, Calories: 165, Protein: 31},
	{Name: "Cottage cheese 5%", basis: nutrition.Per100g, Calories: 95, Protein: 11},
	{Name: "Egg", basis: nutrition.PerUnit, Calories: 70, Protein: 6},
	{Name: "Egg white", basis: nutrition.PerUnit, Calories: 15, Protein: 3},
	{Name: "Ground beef 90/10", basis: nutrition.Per100g, Calories: 145, Protein: 18.6},
	{Name: "Honey", basis: nutrition.PerCup, Calories: 720, Protein: 0},
	{Name: "Hummus", basis: nutrition.Per100g, Calories: 170, Protein: 7},
	{Name: "Maple syrup", basis: nutrition.PerCup, Calories: 832, Protein: 0},
	{Name: "Oats", basis: nutrition.PerCup, Calories: 292, Protein: 9.6},
	{Name: "Olive oil", basis: nutrition.PerCup, Calories: 1920, Protein: 0},
	{Name: "Parmesan cheese", basis: nutrition.Per100g, Calories: 404, Protein: 32},
	{Name: "Peanut butter", basis: nutrition.PerCup, Calories: 1504, Protein: 64},
	{Name: "Peas (frozen)", basis: nutrition.Per100g, Calories: 73, Protein: 6.9},
	{Name: "Potato", basis: nutrition.Per100g, Calories: 86, Protein: 2},
	{Name: "Rice (cooked)", basis: nutrition.Per100g, Calories: 130, Protein: 2.6},
	{Name: "Salmon", basis: nutrition.Per100g, Calories: 206, Protein: 22},
	{Name: "Spinach (frozen)", basis: nutrition.Per100g, Calories: 28, Protein: 3.2},
	{Name: "Strawberries", basis: nutrition.PerCup, Calories: 49, Protein: 1},
	{Name: "Sweet potato", basis: nutrition.Per100g, Calories: 86, Protein: 2},
	{Name: "Tuna", basis: nutrition.Per100g, Calories: 104, Protein: 24.8},
	{Name: "Yogurt 0%", basis: nutrition.Per100g, Calories: 59, Protein: 10.3},
}
